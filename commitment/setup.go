package commitment

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/kzg"
)

var (
	ErrSetupDeserialization = errors.New("malformed verifier setup")
	ErrMissingSetup         = errors.New("no verifier setup configured for scheme")
)

// VerifierSetup carries one scheme's public verification parameters. No
// secret material is involved; values are immutable after parsing and safe
// to share across concurrent verifications.
type VerifierSetup struct {
	Scheme Scheme

	HyperKzg    *kzg.VerifyingKey
	DynamicDory *DoryVerifierSetup
}

// DoryVerifierSetup is the pairing material for checking DynamicDory
// openings against GT-resident commitments.
type DoryVerifierSetup struct {
	// H is the G2 generator the commitments pair against.
	H bls12377.G2Affine
	// TauH is tau·H, the only secret-derived element of the setup.
	TauH bls12377.G2Affine
	// GtBase is e(g1, H), the GT generator claimed evaluations scale.
	GtBase bls12377.GT
}

// ParseVerifierSetup decodes a scheme's verifier setup from its canonical
// serialized form. HyperKzg setups are gnark KZG verifying keys; Dynamic
// Dory setups are a single compressed G2 point (tau·H), with the generator
// and pairing base derived from the curve.
func ParseVerifierSetup(scheme Scheme, data []byte) (*VerifierSetup, error) {
	switch scheme {
	case HyperKzg:
		var vk kzg.VerifyingKey
		if _, err := vk.ReadFrom(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSetupDeserialization, err)
		}
		return &VerifierSetup{Scheme: scheme, HyperKzg: &vk}, nil
	case DynamicDory:
		if len(data) != bls12377.SizeOfG2AffineCompressed {
			return nil, fmt.Errorf("%w: want %d bytes, got %d",
				ErrSetupDeserialization, bls12377.SizeOfG2AffineCompressed, len(data))
		}
		var tauH bls12377.G2Affine
		if _, err := tauH.SetBytes(data); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSetupDeserialization, err)
		}
		dory, err := NewDoryVerifierSetup(tauH)
		if err != nil {
			return nil, err
		}
		return &VerifierSetup{Scheme: scheme, DynamicDory: dory}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, uint8(scheme))
}

// NewDoryVerifierSetup derives the full Dory verifier setup from tau·H.
func NewDoryVerifierSetup(tauH bls12377.G2Affine) (*DoryVerifierSetup, error) {
	_, _, g1, g2 := bls12377.Generators()
	base, err := bls12377.Pair([]bls12377.G1Affine{g1}, []bls12377.G2Affine{g2})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSetupDeserialization, err)
	}
	return &DoryVerifierSetup{H: g2, TauH: tauH, GtBase: base}, nil
}

// LoadVerifierSetupFile reads and parses a setup file.
func LoadVerifierSetupFile(scheme Scheme, path string) (*VerifierSetup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading verifier setup for %s: %w", scheme, err)
	}
	return ParseVerifierSetup(scheme, data)
}

// VerifierSetups is the per-scheme setup set, loaded once at process start
// and passed by reference into the pipeline.
type VerifierSetups struct {
	byScheme map[Scheme]*VerifierSetup
}

func NewVerifierSetups(setups ...*VerifierSetup) *VerifierSetups {
	out := &VerifierSetups{byScheme: make(map[Scheme]*VerifierSetup, len(setups))}
	for _, s := range setups {
		out.byScheme[s.Scheme] = s
	}
	return out
}

// For returns the setup for a scheme, or ErrMissingSetup when none was
// loaded.
func (v *VerifierSetups) For(scheme Scheme) (*VerifierSetup, error) {
	if v != nil {
		if s, ok := v.byScheme[scheme]; ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrMissingSetup, scheme)
}
