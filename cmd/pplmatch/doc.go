// Command pplmatch links transcript speaker labels to legislator records.
//
// Subcommands:
//
//	match       resolve a corpus against a legislator table
//	evaluate    score match output against gold annotations
//	normalize   show how speaker labels are classified and normalized
//	periods     list legislature periods or resolve dates
//	import      load a CSV file into the database
//	tables      list imported tables
//	runs        list, show, export, or delete saved match runs
//	config      create or validate the configuration file
//
// Table arguments accept a CSV path, db:<table> for an imported table, or
// run:<id> for a saved match run.
package main
