package ringct

import (
	"git.gammaspectra.live/Haven/consensus/haven/crypto"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/types"
	"git.gammaspectra.live/Haven/consensus/utils"
)

type DeviceMode uint8

const (
	DeviceModeDefault = DeviceMode(iota)
	// DeviceModeTransactionCreateReal Full signing
	DeviceModeTransactionCreateReal
	// DeviceModeTransactionCreateFake Watch-only simulation: dummy range
	// proofs of correct shape but invalid content
	DeviceModeTransactionCreateFake
)

// Device The signing device capability. A record of function hooks rather
// than an interface tree: the hot path is the inlineable software device,
// hardware wallets present the same shape with blocking I/O hidden inside.
//
// The caller is responsible for serializing access when the backing device
// is single-threaded.
type Device struct {
	Mode DeviceMode

	// GenCommitmentMask Deterministic mask from a per-output amount key
	GenCommitmentMask func(amountKey curve25519.PrivateKeyBytes) curve25519.Scalar

	// EcdhEncode / EcdhDecode Seal and open the per-output amount blob
	EcdhEncode func(tuple *EcdhTuple, amountKey curve25519.PrivateKeyBytes, shortAmount bool)
	EcdhDecode func(tuple *EcdhTuple, amountKey curve25519.PrivateKeyBytes, shortAmount bool)

	// MlsagPrehash The message-hash routine. Factored out because some
	// devices display output details during this call.
	MlsagPrehash func(serializedBase []byte, inputs, outputs int, hashes []types.Hash, outPk CtKeyV, prehash *types.Hash) error
}

// NewSoftwareDevice The default in-process device
func NewSoftwareDevice() *Device {
	return &Device{
		Mode:              DeviceModeTransactionCreateReal,
		GenCommitmentMask: GenCommitmentMask,
		EcdhEncode:        EcdhEncode,
		EcdhDecode:        EcdhDecode,
		MlsagPrehash: func(serializedBase []byte, inputs, outputs int, hashes []types.Hash, outPk CtKeyV, prehash *types.Hash) error {
			h := crypto.NewKeccak256()
			for i := range hashes {
				_, _ = utils.WriteNoEscape(h, hashes[i][:])
			}
			_, _ = utils.ReadNoEscape(h, prehash[:])
			return nil
		},
	}
}
