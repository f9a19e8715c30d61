/*
Package mock contains mock implementations of the interfaces defined in
this module, intended for use in unit-tests.

Mocks are generated by mockgen from the go:generate directives placed
next to each interface.  The destination directory mirrors the path of
the package that declares the interface, and the package name follows
the `mock_*` pattern, where `*` is the original package name.  As an
example, the mock for `log.Logger` is found in `./log/log.go`, under
the package name `mock_log`.
*/
package mock
