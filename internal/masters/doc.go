// Package masters contains the fixed set of slide types. Each master lives in
// its own file and implements master.Master plus whichever optional hooks it
// needs. Default builds the registry the parser is given.
package masters
