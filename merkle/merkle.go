// Package merkle checks membership proofs against the attestation tree
// rooted in attested state roots.
package merkle

import (
	"bytes"

	"golang.org/x/crypto/sha3"
)

// Keccak256 hashes the concatenation of the inputs with legacy Keccak-256,
// the hash the attestation tree is built with.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// HashLeaf hashes encoded leaf bytes into the tree's leaf node.
func HashLeaf(leaf []byte) []byte {
	return Keccak256(leaf)
}

// hashPair combines two child hashes. The tree builder orders children
// lexicographically before hashing, so proofs carry no left/right flags.
func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) <= 0 {
		return Keccak256(a, b)
	}
	return Keccak256(b, a)
}

// ComputeRoot recomputes the root implied by a leaf and its sibling hashes,
// ordered bottom to top.
func ComputeRoot(leaf []byte, siblings [][]byte) []byte {
	node := HashLeaf(leaf)
	for _, sibling := range siblings {
		node = hashPair(node, sibling)
	}
	return node
}

// VerifyMembership reports whether the leaf is included under expectedRoot
// via the given sibling path.
func VerifyMembership(leaf []byte, siblings [][]byte, expectedRoot []byte) bool {
	return bytes.Equal(ComputeRoot(leaf, siblings), expectedRoot)
}
