package merkle

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleLeafRoot(t *testing.T) {
	leaf := []byte("leaf")
	root := ComputeRoot(leaf, nil)
	assert.Equal(t, Keccak256(leaf), root)
	assert.True(t, VerifyMembership(leaf, nil, root))
}

func TestPairOrderIsCommutative(t *testing.T) {
	a := []byte("aaaa")
	b := []byte("bbbb")
	// Whichever side the sibling was on, the recomputed parent is the same.
	left := hashPair(HashLeaf(a), HashLeaf(b))
	right := hashPair(HashLeaf(b), HashLeaf(a))
	assert.Equal(t, left, right)
}

func TestTwoLeafTree(t *testing.T) {
	a := []byte("left leaf")
	b := []byte("right leaf")
	root := hashPair(HashLeaf(a), HashLeaf(b))

	assert.True(t, VerifyMembership(a, [][]byte{HashLeaf(b)}, root))
	assert.True(t, VerifyMembership(b, [][]byte{HashLeaf(a)}, root))
	assert.False(t, VerifyMembership([]byte("other"), [][]byte{HashLeaf(b)}, root))
}

func TestDeepPath(t *testing.T) {
	leaf := []byte("the leaf")
	siblings := make([][]byte, 9)
	for i := range siblings {
		siblings[i] = Keccak256([]byte{byte(i)})
	}
	root := ComputeRoot(leaf, siblings)
	require.Len(t, root, 32)
	assert.True(t, VerifyMembership(leaf, siblings, root))

	// Corrupting any single sibling breaks the proof.
	for i := range siblings {
		corrupted := make([][]byte, len(siblings))
		copy(corrupted, siblings)
		bad := bytes.Clone(siblings[i])
		bad[0] ^= 0xff
		corrupted[i] = bad
		assert.False(t, VerifyMembership(leaf, corrupted, root), "sibling %d", i)
	}
}
