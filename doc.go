// Package wslmanager lists and manages Windows Subsystem for Linux distros
// from Go by driving wsl.exe.
//
// The output of "wsl.exe -l -v" and "wsl.exe --list --online" is decoded from
// UTF-16LE and parsed into InstalledDistro and OnlineDistro records, which
// the query functions filter. A Manager runs the operations that change the
// installation: Delete, Rename and Install, the last two of which go through
// export, import and unregister since WSL cannot rename a distro.
//
// This package also contains a mock wsl.exe back-end which can be useful for
// testing, as setting up WSL distros for every test-case can be quite
// time-consuming. It is selected with the WithBackend option.
package wslmanager
