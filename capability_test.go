package extplan

import (
	"runtime"
	"testing"
)

func TestDetectCapabilities(t *testing.T) {
	testCases := []struct {
		name string
		host HostInfo
		want Capabilities
	}{
		{
			name: "linux little-endian",
			host: HostInfo{OS: "linux", RuntimeIdentity: "gc go1.25.1", LittleEndian: true},
			want: Capabilities{SupportedPlatform: true, SupportedByteOrder: true},
		},
		{
			name: "macos",
			host: HostInfo{OS: "darwin", RuntimeIdentity: "gc go1.25.1", LittleEndian: true},
			want: Capabilities{MacOS: true, SupportedPlatform: true, SupportedByteOrder: true},
		},
		{
			name: "windows",
			host: HostInfo{OS: "windows", RuntimeIdentity: "gc go1.25.1", LittleEndian: true},
			want: Capabilities{Windows: true, SupportedPlatform: true, SupportedByteOrder: true},
		},
		{
			name: "big-endian host",
			host: HostInfo{OS: "linux", RuntimeIdentity: "gc go1.25.1", LittleEndian: false},
			want: Capabilities{SupportedPlatform: true, SupportedByteOrder: false},
		},
		{
			name: "wasm target",
			host: HostInfo{OS: "js", RuntimeIdentity: "gc go1.25.1", LittleEndian: true},
			want: Capabilities{SupportedPlatform: false, SupportedByteOrder: true},
		},
		{
			name: "wasi target",
			host: HostInfo{OS: "wasip1", RuntimeIdentity: "gc go1.25.1", LittleEndian: true},
			want: Capabilities{SupportedPlatform: false, SupportedByteOrder: true},
		},
		{
			name: "gccgo runtime",
			host: HostInfo{OS: "linux", RuntimeIdentity: "gccgo go1.25.1", LittleEndian: true},
			want: Capabilities{AlternateRuntime: true, SupportedPlatform: true, SupportedByteOrder: true},
		},
		{
			name: "tinygo runtime",
			host: HostInfo{OS: "linux", RuntimeIdentity: "gc go1.25.1 tinygo0.34", LittleEndian: true},
			want: Capabilities{AlternateRuntime: true, SupportedPlatform: true, SupportedByteOrder: true},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DetectCapabilities(tc.host)
			if got != tc.want {
				t.Errorf("DetectCapabilities(%+v) = %+v, want %+v", tc.host, got, tc.want)
			}
		})
	}
}

func TestCurrentHost(t *testing.T) {
	host := CurrentHost()

	if host.OS != runtime.GOOS {
		t.Errorf("Expected OS %q, got %q", runtime.GOOS, host.OS)
	}
	if host.RuntimeIdentity == "" {
		t.Error("Expected a non-empty runtime identity")
	}

	// Detection over the real host must always yield a defined flag set;
	// "unsupported" is a value, never a failure.
	caps := DetectCapabilities(host)
	if caps.Windows && caps.MacOS {
		t.Error("Host cannot be both Windows and macOS")
	}
}
