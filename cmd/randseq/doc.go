// 31 July 2020

/*
Randseq is for making random protein sequence collections for testing.
Usage:

	randseq [options] fname nseq minlen maxlen

will generate nseq sequences with lengths spread evenly over minlen to
maxlen, inclusive, and write them to fname. A fname of "-" means stdout.
Identifiers are r1, r2, ... so they are unique within a file.

Flags:

	-g
		sprinkle gap characters in the sequences
	-w
		add random white space and line breaks inside sequences
	-r
		random number seed
	-c
		comment written after each identifier

A collection of 300 sequences with lengths from 10 to 200 is a good
input for trying out embedsub with its default length window of 50 to
100.
*/
package main
