package inventory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestParseInline_OrderAndTrim(t *testing.T) {
	hosts, err := ParseInline("10.0.0.1, 10.0.0.2")
	require.NoError(t, err)
	require.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, hosts)
}

func TestParseInline_SingleHost(t *testing.T) {
	hosts, err := ParseInline("core-sw01.example.net")
	require.NoError(t, err)
	require.Equal(t, []string{"core-sw01.example.net"}, hosts)
}

func TestParseInline_EmptyEntry(t *testing.T) {
	_, err := ParseInline("10.0.0.1,,10.0.0.2")
	require.ErrorIs(t, err, ErrEmptyEntry)

	_, err = ParseInline("10.0.0.1, ")
	require.ErrorIs(t, err, ErrEmptyEntry)
}

func TestLoadFile_ExtractsAndDeduplicates(t *testing.T) {
	p := writeTemp(t, "inv.txt", `
! router dump, comments must be skipped
# another comment style
ip route 10.1.1.0 255.255.255.0 192.168.0.1
ip route 10.2.2.0 255.255.255.0 192.168.0.1
interface Loopback0
 ip address 172.16.0.1 255.255.255.255
`)
	hosts, err := LoadFile(p)
	require.NoError(t, err)
	// 255.* masks are excluded, first-seen order preserved, duplicates removed
	require.Equal(t, []string{"10.1.1.0", "192.168.0.1", "10.2.2.0", "172.16.0.1"}, hosts)
}

func TestLoadFile_NeverReturns255Prefix(t *testing.T) {
	p := writeTemp(t, "inv.txt", "255.255.255.0\n255.0.0.0\n10.0.0.1\n")
	hosts, err := LoadFile(p)
	require.NoError(t, err)
	require.Equal(t, []string{"10.0.0.1"}, hosts)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}
