package proof

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/holiman/uint256"
)

// Prover compiles the release circuit once and generates proofs for
// individual spends.
type Prover struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey
}

// NewProver compiles the circuit and runs setup. In production the setup
// would come from a ceremony; here it is generated locally.
func NewProver() (*Prover, error) {
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &ReleaseCircuit{})
	if err != nil {
		return nil, fmt.Errorf("proof: circuit compilation failed: %w", err)
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, fmt.Errorf("proof: setup failed: %w", err)
	}
	return &Prover{cs: cs, pk: pk, vk: vk}, nil
}

// Constraints returns the size of the compiled circuit.
func (p *Prover) Constraints() int {
	return p.cs.GetNbConstraints()
}

// ProveSpend proves that spending spend out of a total balance respects
// a grant released over epochs (0..8) elapsed epochs. It returns the
// proof and the public witness needed to verify it.
func (p *Prover) ProveSpend(total, spend, grant *uint256.Int, epochs uint64) (groth16.Proof, witness.Witness, error) {
	prod := new(big.Int).Mul(grant.ToBig(), new(big.Int).SetUint64(epochs))
	released, rem := new(big.Int).QuoRem(prod, big.NewInt(8), new(big.Int))

	assignment := &ReleaseCircuit{
		Total:    total.ToBig(),
		Spend:    spend.ToBig(),
		Epochs:   new(big.Int).SetUint64(epochs),
		Grant:    grant.ToBig(),
		Released: released,
		Rem:      rem,
	}
	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, nil, fmt.Errorf("proof: building witness: %w", err)
	}
	prf, err := groth16.Prove(p.cs, p.pk, w)
	if err != nil {
		return nil, nil, fmt.Errorf("proof: proving failed: %w", err)
	}
	pub, err := w.Public()
	if err != nil {
		return nil, nil, fmt.Errorf("proof: extracting public witness: %w", err)
	}
	return prf, pub, nil
}

// Verify checks a proof against its public witness.
func (p *Prover) Verify(prf groth16.Proof, pub witness.Witness) error {
	if err := groth16.Verify(prf, p.vk, pub); err != nil {
		return fmt.Errorf("proof: verification failed: %w", err)
	}
	return nil
}
