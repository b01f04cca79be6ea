// Package commitment defines the closed set of commitment schemes tables
// are committed under, the attestation-tree leaf codec, and the typed
// commitment objects the evaluation proof is checked against.
package commitment

import (
	"errors"
	"fmt"
	"strings"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	bn254 "github.com/consensys/gnark-crypto/ecc/bn254"
)

// Scheme identifies a commitment scheme. The set is closed: exactly two
// schemes exist and new ones require a registry entry.
type Scheme uint8

const (
	HyperKzg Scheme = iota
	DynamicDory
)

var ErrUnknownScheme = errors.New("unknown commitment scheme")

// Descriptor carries everything that parametrizes the pipeline over a
// scheme: the byte discriminant used in attestation-tree leaves, the
// prover-facing wire name, and the fixed width of one column commitment.
type Descriptor struct {
	Scheme Scheme
	// Name is the human-readable scheme name.
	Name string
	// ProverName is the SCREAMING_SNAKE identifier the ZK Query API uses.
	ProverName string
	// WireDiscriminant is the single-byte encoding inside tree leaves.
	// Pinned against the live chain: HyperKzg is 0, DynamicDory is 1.
	WireDiscriminant byte
	// CommitmentSize is the byte width of one serialized column commitment.
	CommitmentSize int
	// EVMCompatiblePlan marks the scheme whose proof plans travel in the
	// EVM-ABI wrapped form.
	EVMCompatiblePlan bool
}

var registry = map[Scheme]*Descriptor{
	HyperKzg: {
		Scheme:            HyperKzg,
		Name:              "HyperKzg",
		ProverName:        "HYPER_KZG",
		WireDiscriminant:  0,
		CommitmentSize:    bn254.SizeOfG1AffineCompressed,
		EVMCompatiblePlan: true,
	},
	DynamicDory: {
		Scheme:           DynamicDory,
		Name:             "DynamicDory",
		ProverName:       "DYNAMIC_DORY",
		WireDiscriminant: 1,
		CommitmentSize:   bls12377.SizeOfGT,
	},
}

// Lookup returns the descriptor for a scheme.
func Lookup(s Scheme) (*Descriptor, error) {
	desc, ok := registry[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownScheme, uint8(s))
	}
	return desc, nil
}

// Schemes lists every known scheme in discriminant order.
func Schemes() []Scheme {
	return []Scheme{HyperKzg, DynamicDory}
}

func (s Scheme) String() string {
	if desc, ok := registry[s]; ok {
		return desc.Name
	}
	return fmt.Sprintf("Scheme(%d)", uint8(s))
}

// ParseScheme accepts CLI spellings: "hyper-kzg" or "dynamic-dory", case
// insensitive, with the prover wire names as aliases.
func ParseScheme(s string) (Scheme, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "hyper-kzg", "hyperkzg":
		return HyperKzg, nil
	case "dynamic-dory", "dynamicdory":
		return DynamicDory, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownScheme, s)
}

// MarshalJSON renders the prover wire name, e.g. "HYPER_KZG".
func (s Scheme) MarshalJSON() ([]byte, error) {
	desc, err := Lookup(s)
	if err != nil {
		return nil, err
	}
	return []byte(`"` + desc.ProverName + `"`), nil
}

func (s *Scheme) UnmarshalJSON(data []byte) error {
	name := strings.Trim(string(data), `"`)
	for _, desc := range registry {
		if desc.ProverName == name {
			*s = desc.Scheme
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}
