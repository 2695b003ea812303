/*
Package hhsuite provides convenient wrappers for running the hhsuite search
programs hhblits and hhsearch.

The $HHLIB environment variable is used to determine the location of databases.
i.e., a database named "pdb70/pdb70" will resolve to $HHLIB/data/pdb70/pdb70.
If this behavior is not desired, change the global variable DatabasePath to
wherever databases are stored, or use absolute database paths. (An empty
database path will leave database names untouched.)

Both wrappers return the raw output file of the program, so that it can be
cached as is. Note that full wrappers for each program are not provided.
Options can be added on an as-needed basis.
*/
package hhsuite
