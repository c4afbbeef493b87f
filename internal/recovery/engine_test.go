package recovery

import (
	"crypto/sha1"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullhaus/fat32recover/internal/volume"
)

func tombstoneName(s string) [11]byte {
	raw := nameBytes(s)
	raw[0] = 0xE5
	return raw
}

func TestValidateRequest(t *testing.T) {
	require.Error(t, ValidateRequest("", "", false))

	err := ValidateRequest("HELLO.TXT", "", true)
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, UsageError, rerr.Kind)

	require.Error(t, ValidateRequest("HELLO.TXT", "nothex", false))
	require.Error(t, ValidateRequest("HELLO.TXT", "abcd", false))

	digest := hex.EncodeToString(make([]byte, volume.DigestSize))
	require.NoError(t, ValidateRequest("HELLO.TXT", digest, true))
	require.NoError(t, ValidateRequest("HELLO.TXT", "", false))
}

func TestList(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())

	writeSlot(t, vol, rootCluster, 0, nameBytes("FILE    TXT"), 0, 10, 20)
	writeSlot(t, vol, rootCluster, 1, nameBytes("SUBDIR     "), 0x10, 11, 0)
	writeSlot(t, vol, rootCluster, 2, nameBytes("VOLLABEL   "), 0x08, 0, 0)
	writeSlot(t, vol, rootCluster, 3, nameBytes("LONGNAME   "), 0x0F, 0, 0)
	writeTerminator(t, vol, rootCluster, 4)

	entries, err := e.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "FILE.TXT", entries[0].Name)
	require.False(t, entries[0].IsDir)
	require.Equal(t, uint32(20), entries[0].Size)
	require.Equal(t, "SUBDIR", entries[1].Name)
	require.True(t, entries[1].IsDir)
}

func TestRecoverOneNoDigestSingleMatch(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())

	writeSlot(t, vol, rootCluster, 0, tombstoneName("?ELLO   TXT"), 0, 10, bytesPerSector)
	writeTerminator(t, vol, rootCluster, 1)

	content := make([]byte, bytesPerSector)
	copy(content, []byte("payload"))
	require.NoError(t, vol.WriteClusterData(10, content))

	result, err := e.RecoverOne("HELLO.TXT", "")
	require.NoError(t, err)
	require.True(t, result.Recovered)
	require.False(t, result.Ambiguous)
	require.False(t, result.WithDigest)

	raw, err := vol.DirSlot(rootCluster, 0)
	require.NoError(t, err)
	require.Equal(t, byte('H'), raw[0])

	entry, err := vol.FAT(0, 10)
	require.NoError(t, err)
	require.True(t, volume.IsEOC(entry))
}

func TestRecoverOneNoDigestNotFound(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())
	writeTerminator(t, vol, rootCluster, 0)

	result, err := e.RecoverOne("MISSING.TXT", "")
	require.NoError(t, err)
	require.False(t, result.Recovered)
}

func TestRecoverOneAmbiguousRecoversFirstByDefault(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())

	writeSlot(t, vol, rootCluster, 0, tombstoneName("?ELLO   TXT"), 0, 10, bytesPerSector)
	writeSlot(t, vol, rootCluster, 1, tombstoneName("?ELLO   TXT"), 0, 11, bytesPerSector)
	writeTerminator(t, vol, rootCluster, 2)

	result, err := e.RecoverOne("HELLO.TXT", "")
	require.NoError(t, err)
	require.True(t, result.Recovered)
	require.True(t, result.Ambiguous)

	first, err := vol.DirSlot(rootCluster, 0)
	require.NoError(t, err)
	require.Equal(t, byte('H'), first[0])

	second, err := vol.DirSlot(rootCluster, 1)
	require.NoError(t, err)
	require.Equal(t, byte(0xE5), second[0])
}

func TestRecoverOneStrictAmbiguousRefuses(t *testing.T) {
	vol := newTestVolume(t)
	opts := DefaultOptions()
	opts.StrictAmbiguous = true
	e := New(vol, opts)

	writeSlot(t, vol, rootCluster, 0, tombstoneName("?ELLO   TXT"), 0, 10, bytesPerSector)
	writeSlot(t, vol, rootCluster, 1, tombstoneName("?ELLO   TXT"), 0, 11, bytesPerSector)
	writeTerminator(t, vol, rootCluster, 2)

	_, err := e.RecoverOne("HELLO.TXT", "")
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, AmbiguousCandidates, rerr.Kind)
}

func TestRecoverOneWithDigestPicksVerifiedCandidate(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())

	wrong := make([]byte, bytesPerSector)
	copy(wrong, []byte("wrong content"))
	right := make([]byte, bytesPerSector)
	copy(right, []byte("right content"))
	require.NoError(t, vol.WriteClusterData(10, wrong))
	require.NoError(t, vol.WriteClusterData(11, right))

	writeSlot(t, vol, rootCluster, 0, tombstoneName("?ELLO   TXT"), 0, 10, bytesPerSector)
	writeSlot(t, vol, rootCluster, 1, tombstoneName("?ELLO   TXT"), 0, 11, bytesPerSector)
	writeTerminator(t, vol, rootCluster, 2)

	sum := sha1.Sum(right)
	digest := hex.EncodeToString(sum[:])

	result, err := e.RecoverOne("HELLO.TXT", digest)
	require.NoError(t, err)
	require.True(t, result.Recovered)
	require.True(t, result.WithDigest)
	require.False(t, result.Ambiguous)

	second, err := vol.DirSlot(rootCluster, 1)
	require.NoError(t, err)
	require.Equal(t, byte('H'), second[0])

	first, err := vol.DirSlot(rootCluster, 0)
	require.NoError(t, err)
	require.Equal(t, byte(0xE5), first[0])
}

// TestRecoverOneWithDigestRejectsMismatch pins P6: a name match whose
// content digest does not verify is reported as not found, never recovered.
func TestRecoverOneWithDigestRejectsMismatch(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())

	content := make([]byte, bytesPerSector)
	copy(content, []byte("actual content"))
	require.NoError(t, vol.WriteClusterData(10, content))
	writeSlot(t, vol, rootCluster, 0, tombstoneName("?ELLO   TXT"), 0, 10, bytesPerSector)
	writeTerminator(t, vol, rootCluster, 1)

	wrongSum := sha1.Sum([]byte("not the content"))
	digest := hex.EncodeToString(wrongSum[:])

	result, err := e.RecoverOne("HELLO.TXT", digest)
	require.NoError(t, err)
	require.False(t, result.Recovered)

	raw, err := vol.DirSlot(rootCluster, 0)
	require.NoError(t, err)
	require.Equal(t, byte(0xE5), raw[0], "unverified candidate must not be restored")
}

// TestRecoverPossiblyFragmentedFindsNonContiguousOrder pins P5: the
// permutation search must try orderings other than ascending cluster
// number, since free clusters need not be assigned in scan order.
func TestRecoverPossiblyFragmentedFindsNonContiguousOrder(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())

	require.NoError(t, vol.SetFAT(0, rootCluster, volume.EOCMarker))
	require.NoError(t, vol.SetFAT(1, rootCluster, volume.EOCMarker))

	full := make([]byte, bytesPerSector)
	copy(full, []byte("first fragment contents, five hundred and some bytes long padded"))
	tail := make([]byte, 88)
	copy(tail, []byte("second fragment tail"))

	content := append(append([]byte{}, full...), tail...)
	sum := sha1.Sum(content)
	digest := hex.EncodeToString(sum[:])

	// Scan order (ascending from cluster 2) finds [3, 4] first; the correct
	// assembly order is [4, 3], so a pure ascending read must fail and the
	// permutation search must advance at least once.
	require.NoError(t, vol.WriteClusterData(4, full))
	tailCluster := make([]byte, bytesPerSector)
	copy(tailCluster, tail)
	require.NoError(t, vol.WriteClusterData(3, tailCluster))

	writeSlot(t, vol, rootCluster, 0, tombstoneName("?RAG    BIN"), 0, 99, uint32(len(content)))
	writeTerminator(t, vol, rootCluster, 1)

	result, err := e.RecoverPossiblyFragmented("FRAG.BIN", digest)
	require.NoError(t, err)
	require.True(t, result.Recovered)
	require.True(t, result.WithDigest)

	fourEntry, err := vol.FAT(0, 4)
	require.NoError(t, err)
	require.Equal(t, uint32(3), fourEntry)

	threeEntry, err := vol.FAT(0, 3)
	require.NoError(t, err)
	require.True(t, volume.IsEOC(threeEntry))
}

func TestRecoverPossiblyFragmentedRequiresDigest(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())
	_, err := e.RecoverPossiblyFragmented("FRAG.BIN", "")
	require.Error(t, err)
	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	require.Equal(t, UsageError, rerr.Kind)
}

func TestRecoverAllByName(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())

	writeSlot(t, vol, rootCluster, 0, tombstoneName("?UP     TXT"), 0, 10, 4)
	writeSlot(t, vol, rootCluster, 1, tombstoneName("?UP     TXT"), 0, 11, 4)
	writeTerminator(t, vol, rootCluster, 2)

	result, err := e.RecoverAllByName("DUP.TXT")
	require.NoError(t, err)
	require.Equal(t, 2, result.Count)

	for _, idx := range []int{0, 1} {
		raw, err := vol.DirSlot(rootCluster, idx)
		require.NoError(t, err)
		require.Equal(t, byte('D'), raw[0])
	}
}

func TestRecoverAllDeleted(t *testing.T) {
	vol := newTestVolume(t)
	e := New(vol, DefaultOptions())

	// Normal recoverable tombstone.
	writeSlot(t, vol, rootCluster, 0, tombstoneName("ONE     TXT"), 0, 10, bytesPerSector)
	// Zero-length tombstone: reported, FAT untouched.
	writeSlot(t, vol, rootCluster, 1, tombstoneName("EMPTY   TXT"), 0, 12, 0)
	// Invalid first-cluster tombstone: reported, FAT untouched.
	writeSlot(t, vol, rootCluster, 2, tombstoneName("BAD     TXT"), 0, 1, 50)
	// Long-name component under a tombstone byte: must be skipped entirely.
	writeSlot(t, vol, rootCluster, 3, tombstoneName("IGNOREME   "), 0x0F, 0, 0)
	// A live file, not a candidate at all.
	writeSlot(t, vol, rootCluster, 4, nameBytes("LIVE    TXT"), 0, 20, 5)
	writeTerminator(t, vol, rootCluster, 5)

	result, err := e.RecoverAllDeleted()
	require.NoError(t, err)
	require.Len(t, result.Files, 3)

	names := make([]string, len(result.Files))
	for i, f := range result.Files {
		names[i] = f.Name
	}
	require.Contains(t, names, "_NE.TXT")
	require.Contains(t, names, "_MPTY.TXT")
	require.Contains(t, names, "_AD.TXT")

	entry, err := vol.FAT(0, 10)
	require.NoError(t, err)
	require.True(t, volume.IsEOC(entry))

	raw1, err := vol.DirSlot(rootCluster, 1)
	require.NoError(t, err)
	require.Equal(t, byte('_'), raw1[0])

	raw3, err := vol.DirSlot(rootCluster, 3)
	require.NoError(t, err)
	require.Equal(t, byte(0xE5), raw3[0], "long-name slot must remain untouched")
}
