// Package pkgdb defines the query primitive every package-manager backend
// implements: "is package P installed, and if so which version?".
//
// A [Binding] wraps one concrete way of answering that question, for example
// parsing the dpkg status file in-process or shelling out to dpkg-query.
// Backends declare an ordered list of bindings and use [First] to pick the
// first one that is usable on the current host:
//
//	b, err := pkgdb.First(dpkg.NewStatusFile(""), dpkg.NewQuery(nil))
//	if err != nil {
//	    return err // no binding available
//	}
//	pkg, err := b.Lookup(ctx, "firefox-esr")
//
// Bindings are read-only and safe for concurrent use.
package pkgdb
