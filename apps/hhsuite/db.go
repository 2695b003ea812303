package hhsuite

import (
	"os"
	"path"
	"strings"
)

// The default database path. This will be used to resolve the full paths
// of databases. $HHLIB is usually set in an hhsuite environment.
//
// If you'd like to use a different database path (or none at all), then simply
// change this value to reflect that.
var DatabasePath = path.Join(os.Getenv("HHLIB"), "data")

// A Database is an hhsuite database. A value of type Database should simply
// be the name of the database. i.e., for the $HHLIB/data/uniclust30 database,
// just use 'uniclust30'.
//
// BFD and Uniclust30 are searched together with hhblits, and PDB70 with
// hhsearch.
//
// If the database ends in '.hhm', then it is assumed to be an hhsearch
// database. Therefore, it cannot work with hhblits (an error will be thrown
// if you try). Otherwise, the database is assumed to be an hhsuite database
// that can be used with hhblits OR hhsearch.
//
// Finally, if the database is an absolute path (i.e., starts with '/'), then
// the database name will be used unaltered.
type Database string

// Resolve will expand a Database value to its full path using DatabasePath.
func (db Database) Resolve() string {
	if path.IsAbs(string(db)) || len(DatabasePath) == 0 {
		return string(db)
	}
	return path.Join(DatabasePath, string(db))
}

// Databases converts database names given on the command line or in a
// settings file.
func Databases(names []string) []Database {
	dbs := make([]Database, len(names))
	for i, name := range names {
		dbs[i] = Database(name)
	}
	return dbs
}

// isOldStyle returns whether this is a database from before hhsuite 2.0.
// i.e., it ends with ".hhm".
func (db Database) isOldStyle() bool {
	return strings.HasSuffix(string(db), ".hhm")
}
