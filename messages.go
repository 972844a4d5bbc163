package extplan

// Informational banners written to the error stream. None of this text is
// contractual; the plan contents never depend on it.

// PlatformUnsupportedMsg is printed when the host platform cannot load
// the optional extensions at all.
const PlatformUnsupportedMsg = `
===============================================================================
The optional C extensions are not supported on this platform.
===============================================================================
`

// ByteOrderUnsupportedMsg is printed on big-endian hosts; the murmur3
// implementation assumes little-endian layouts.
const ByteOrderUnsupportedMsg = `
===============================================================================
The optional C extensions are not supported on big-endian systems.
===============================================================================
`

// AlternateRuntimeMsg is printed on non-reference runtimes, which cannot
// load arbitrary compiled extensions.
const AlternateRuntimeMsg = `
=================================================================================
Some optional C extensions are not supported on this runtime. Only murmur3 will be built.
=================================================================================
`

// WindowsCompileHelpMsg explains how to get a working toolchain on
// Windows. The %s is the name of the extension that could not be built.
const WindowsCompileHelpMsg = `
===============================================================================
WARNING: could not compile %s.

The C extensions are not required for the driver to run, but they add support
for token-aware routing with the Murmur3Partitioner.

On Windows, make sure Visual Studio or an SDK is installed, and your environment
is configured to build for the appropriate architecture (matching your Python runtime).
This is often a matter of using vcvarsall.bat from your install directory, or running
from a command prompt in the Visual Studio Tools Start Menu.
===============================================================================
`

// UnixCompileHelpMsg explains how to get a working toolchain and libev
// headers on Linux and macOS. The %s is the name of the extension that
// could not be built.
const UnixCompileHelpMsg = `
===============================================================================
WARNING: could not compile %s.

The C extensions are not required for the driver to run, but they add support
for libev and token-aware routing with the Murmur3Partitioner.

Linux users should ensure that GCC and the Python headers are available.

On Ubuntu and Debian, this can be accomplished by running:

    $ sudo apt-get install build-essential python-dev

On RedHat and RedHat-based systems like CentOS and Fedora:

    $ sudo yum install gcc python-devel

On OSX, homebrew installations of Python should provide the necessary headers.

libev Support
-------------
For libev support, you will also need to install libev and its headers.

On Debian/Ubuntu:

    $ sudo apt-get install libev4 libev-dev

On RHEL/CentOS/Fedora:

    $ sudo yum install libev libev-devel

On OSX, via homebrew:

    $ brew install libev

===============================================================================
`
