// Package detect reports which packages of an application are installed on
// the running host.
//
// A [System] owns one platform catalog and one package database binding.
// [AptSystem] covers Debian-family Linux and [PkgSystem] covers FreeBSD and
// DragonFly BSD. Both share the same match algorithm: every candidate package
// of an application is looked up once, in catalog order, and the installed
// ones are returned as a [Result].
//
// [Select] maps a [Host] to the constructor and catalog tag of the matching
// variant:
//
//	host, err := detect.ProbeHost(ctx)
//	newSystem, tag, err := detect.Select(host)
//	cat, err := loader.LoadPlatform(string(tag))
//	sys, err := newSystem(cat)
//	defer sys.Close()
//	res, err := sys.Check(ctx, "firefox")
//
// Errors are classified with the sentinels [ErrUnknownApplication],
// [ErrBackend] and [ErrUnsupportedPlatform]; test them with errors.Is.
package detect
