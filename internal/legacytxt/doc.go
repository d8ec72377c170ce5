// Package legacytxt reads and writes the legacy line-oriented
// configuration format:
//
//	% comment
//	room.dimension = [10 7 4]
//	room.surface.absorption = [0.1 0.2;
//	                           0.3 0.4]
//	source(1).location = [8 2.5 1.6]; trailing comment
//
// Values are typed by Coerce. Indexed source and receiver entries become
// ordered "sources" and "receivers" lists.
package legacytxt
