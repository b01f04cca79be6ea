package attestation

import (
	"fmt"

	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/commitment"
	"github.com/spaceandtimefdn/sxt-proof-of-sql-sdk/merkle"
)

// VerifyAttestations runs the first two verification stages over a bundle:
// every attestation carrying a table-commitments root must have a signature
// recovering to its claimed address, and every table commitment must be a
// Merkle member of every such attested root. Attestations over other
// domains are filtered out before any check runs, so a bundle whose
// attestations all cover other domains passes vacuously no matter what
// their signatures look like. Verification fails on the first violation.
//
// On success the serialized commitments are returned keyed by table
// identifier, ready for extraction into a commitment accessor.
func VerifyAttestations(bundle *AttestedCommitmentsBundle, scheme commitment.Scheme) (map[string][]byte, error) {
	attestations, err := bundle.attestations()
	if err != nil {
		return nil, err
	}

	for i := range attestations {
		att := &attestations[i]
		root := att.commitmentsRoot()
		if root == nil {
			continue
		}
		if err := VerifyEthSignature(att.message(), &att.Signature, att.Address); err != nil {
			return nil, fmt.Errorf("attestation %d from %s: %w", i, att.Address.Hex(), err)
		}
		for j := range bundle.Commitments {
			cp := &bundle.Commitments[j]
			leaf, err := commitment.EncodeLeaf(cp.TableIdentifier, scheme, cp.Commitment)
			if err != nil {
				return nil, err
			}
			if !merkle.VerifyMembership(leaf, cp.siblings(), root) {
				return nil, fmt.Errorf("table %s against root of attestation %d: %w",
					cp.TableIdentifier, i, ErrMerkleProofVerification)
			}
		}
	}

	out := make(map[string][]byte, len(bundle.Commitments))
	for i := range bundle.Commitments {
		cp := &bundle.Commitments[i]
		if _, dup := out[cp.TableIdentifier]; dup {
			return nil, fmt.Errorf("duplicate commitment for table %s: %w",
				cp.TableIdentifier, ErrMalformedData)
		}
		out[cp.TableIdentifier] = cp.Commitment
	}
	return out, nil
}
