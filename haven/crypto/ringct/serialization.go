package ringct

import (
	"encoding/binary"
	"errors"

	"git.gammaspectra.live/Haven/consensus/haven/crypto/curve25519"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/borromean"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/bulletproofs"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/clsag"
	"git.gammaspectra.live/Haven/consensus/haven/crypto/ringct/mlsag"
	"git.gammaspectra.live/Haven/consensus/utils"
)

var ErrUnsupportedType = errors.New("unsupported ringct type")
var ErrInvalidEncoding = errors.New("invalid ringct encoding")

// legacyColours Whether this epoch serializes per-colour fee and commitment
// slots; Haven2 onward collapses them into the source colour
func (t Type) legacyColours() bool {
	switch t {
	case TypeSimple, TypeBulletproof, TypeBulletproof2, TypeCLSAG, TypeCLSAGN:
		return true
	}
	return false
}

func (b *SigBase) BufferLength(inputs, outputs int) (n int) {
	n = 1 + utils.UVarInt64Size(b.TxnFee) + utils.UVarInt64Size(b.TxnOffshoreFee)
	if b.Type.legacyColours() {
		n += utils.UVarInt64Size(b.TxnFeeUsd) + utils.UVarInt64Size(b.TxnOffshoreFeeUsd)
		n += utils.UVarInt64Size(b.TxnFeeXAsset) + utils.UVarInt64Size(b.TxnOffshoreFeeXAsset)
	}
	if b.Type == TypeSimple {
		n += inputs * curve25519.PublicKeySize
	}
	if b.Type.ShortAmount() {
		n += outputs * 8
	} else {
		n += outputs * curve25519.PrivateKeySize * 2
	}
	n += outputs * curve25519.PublicKeySize
	if b.Type.legacyColours() {
		n += 2 * outputs * curve25519.PublicKeySize
	}
	if b.Type == TypeHaven2 || b.Type == TypeHaven3 {
		n += utils.UVarInt64Size(len(b.MaskSums)) + len(b.MaskSums)*curve25519.PrivateKeySize
	}
	return n
}

// AppendBinary The canonical encoding of the signature base for this epoch.
// inputs and outputs are carried by the enclosing transaction, not encoded
// here. This layout is consensus critical and hashed into every signature.
func (b *SigBase) AppendBinary(preAllocatedBuf []byte, inputs, outputs int) (data []byte, err error) {
	buf := preAllocatedBuf
	buf = append(buf, byte(b.Type))
	if b.Type == TypeNull {
		return buf, nil
	}
	switch b.Type {
	case TypeSimple, TypeBulletproof, TypeBulletproof2, TypeCLSAG, TypeCLSAGN, TypeHaven2, TypeHaven3:
	default:
		return nil, ErrUnsupportedType
	}

	buf = binary.AppendUvarint(buf, b.TxnFee)
	buf = binary.AppendUvarint(buf, b.TxnOffshoreFee)
	if b.Type.legacyColours() {
		buf = binary.AppendUvarint(buf, b.TxnFeeUsd)
		buf = binary.AppendUvarint(buf, b.TxnOffshoreFeeUsd)
		buf = binary.AppendUvarint(buf, b.TxnFeeXAsset)
		buf = binary.AppendUvarint(buf, b.TxnOffshoreFeeXAsset)
	}

	if b.Type == TypeSimple {
		if len(b.PseudoOuts) != inputs {
			return nil, ErrInvalidEncoding
		}
		for i := range b.PseudoOuts {
			buf = append(buf, b.PseudoOuts[i][:]...)
		}
	}

	if len(b.EcdhInfo) != outputs {
		return nil, ErrInvalidEncoding
	}
	for i := range b.EcdhInfo {
		if b.Type.ShortAmount() {
			buf = append(buf, b.EcdhInfo[i].Amount[:8]...)
		} else {
			buf = append(buf, b.EcdhInfo[i].Mask[:]...)
			buf = append(buf, b.EcdhInfo[i].Amount[:]...)
		}
	}

	if len(b.OutPk) != outputs {
		return nil, ErrInvalidEncoding
	}
	for i := range b.OutPk {
		buf = append(buf, b.OutPk[i].Mask[:]...)
	}
	if b.Type.legacyColours() {
		if len(b.OutPkUsd) != outputs || len(b.OutPkXAsset) != outputs {
			return nil, ErrInvalidEncoding
		}
		for i := range b.OutPkUsd {
			buf = append(buf, b.OutPkUsd[i].Mask[:]...)
		}
		for i := range b.OutPkXAsset {
			buf = append(buf, b.OutPkXAsset[i].Mask[:]...)
		}
	}

	if b.Type == TypeHaven2 || b.Type == TypeHaven3 {
		buf = binary.AppendUvarint(buf, uint64(len(b.MaskSums)))
		for i := range b.MaskSums {
			buf = append(buf, b.MaskSums[i].Bytes()...)
		}
	}

	return buf, nil
}

// FromReader Decodes the signature base. The output key destinations are
// carried by the companion transaction outputs and stay zero here.
func (b *SigBase) FromReader(reader utils.ReaderAndByteReader, inputs, outputs int) (err error) {
	var typeByte [1]byte
	if _, err = utils.ReadFullNoEscape(reader, typeByte[:]); err != nil {
		return err
	}
	b.Type = Type(typeByte[0])
	if b.Type == TypeNull {
		return nil
	}
	switch b.Type {
	case TypeSimple, TypeBulletproof, TypeBulletproof2, TypeCLSAG, TypeCLSAGN, TypeHaven2, TypeHaven3:
	default:
		return ErrUnsupportedType
	}

	if b.TxnFee, err = utils.ReadCanonicalUvarint(reader); err != nil {
		return err
	}
	if b.TxnOffshoreFee, err = utils.ReadCanonicalUvarint(reader); err != nil {
		return err
	}
	if b.Type.legacyColours() {
		if b.TxnFeeUsd, err = utils.ReadCanonicalUvarint(reader); err != nil {
			return err
		}
		if b.TxnOffshoreFeeUsd, err = utils.ReadCanonicalUvarint(reader); err != nil {
			return err
		}
		if b.TxnFeeXAsset, err = utils.ReadCanonicalUvarint(reader); err != nil {
			return err
		}
		if b.TxnOffshoreFeeXAsset, err = utils.ReadCanonicalUvarint(reader); err != nil {
			return err
		}
	}

	if b.Type == TypeSimple {
		b.PseudoOuts = make([]curve25519.PublicKeyBytes, inputs)
		for i := range b.PseudoOuts {
			if _, err = utils.ReadFullNoEscape(reader, b.PseudoOuts[i][:]); err != nil {
				return err
			}
		}
	}

	b.EcdhInfo = make([]EcdhTuple, outputs)
	for i := range b.EcdhInfo {
		if b.Type.ShortAmount() {
			if _, err = utils.ReadFullNoEscape(reader, b.EcdhInfo[i].Amount[:8]); err != nil {
				return err
			}
		} else {
			if _, err = utils.ReadFullNoEscape(reader, b.EcdhInfo[i].Mask[:]); err != nil {
				return err
			}
			if _, err = utils.ReadFullNoEscape(reader, b.EcdhInfo[i].Amount[:]); err != nil {
				return err
			}
		}
	}

	b.OutPk = make(CtKeyV, outputs)
	for i := range b.OutPk {
		if _, err = utils.ReadFullNoEscape(reader, b.OutPk[i].Mask[:]); err != nil {
			return err
		}
	}
	if b.Type.legacyColours() {
		b.OutPkUsd = make(CtKeyV, outputs)
		b.OutPkXAsset = make(CtKeyV, outputs)
		for i := range b.OutPkUsd {
			if _, err = utils.ReadFullNoEscape(reader, b.OutPkUsd[i].Mask[:]); err != nil {
				return err
			}
		}
		for i := range b.OutPkXAsset {
			if _, err = utils.ReadFullNoEscape(reader, b.OutPkXAsset[i].Mask[:]); err != nil {
				return err
			}
		}
	}

	if b.Type == TypeHaven2 || b.Type == TypeHaven3 {
		var n uint64
		if n, err = utils.ReadCanonicalUvarint(reader); err != nil {
			return err
		}
		if n > 3 {
			return ErrInvalidEncoding
		}
		b.MaskSums = make([]curve25519.Scalar, n)
		var sec curve25519.PrivateKeyBytes
		for i := range b.MaskSums {
			if _, err = utils.ReadFullNoEscape(reader, sec[:]); err != nil {
				return err
			}
			if _, err = b.MaskSums[i].SetCanonicalBytes(sec[:]); err != nil {
				return err
			}
		}
	}

	return nil
}

func appendPoint(buf []byte, p *curve25519.Point) []byte {
	return append(buf, p.Bytes()...)
}

func readPoint(reader utils.ReaderAndByteReader, p *curve25519.Point) (err error) {
	var k curve25519.PublicKeyBytes
	if _, err = utils.ReadFullNoEscape(reader, k[:]); err != nil {
		return err
	}
	if curve25519.DecodeCompressedPoint(p, k) == nil {
		return ErrInvalidEncoding
	}
	return nil
}

func readScalar(reader utils.ReaderAndByteReader, s *curve25519.Scalar) (err error) {
	var k curve25519.PrivateKeyBytes
	if _, err = utils.ReadFullNoEscape(reader, k[:]); err != nil {
		return err
	}
	if _, err = s.SetCanonicalBytes(k[:]); err != nil {
		return err
	}
	return nil
}

// AppendBulletproof The canonical prunable encoding of an aggregated proof
func AppendBulletproof(buf []byte, p *bulletproofs.Proof) []byte {
	// V is expanded from outPk and not serialized
	buf = appendPoint(buf, &p.A)
	buf = appendPoint(buf, &p.S)
	buf = appendPoint(buf, &p.T1)
	buf = appendPoint(buf, &p.T2)
	buf = append(buf, p.TauX.Bytes()...)
	buf = append(buf, p.Mu.Bytes()...)
	buf = binary.AppendUvarint(buf, uint64(len(p.L)))
	for i := range p.L {
		buf = appendPoint(buf, &p.L[i])
	}
	buf = binary.AppendUvarint(buf, uint64(len(p.R)))
	for i := range p.R {
		buf = appendPoint(buf, &p.R[i])
	}
	buf = append(buf, p.Aa.Bytes()...)
	buf = append(buf, p.Bb.Bytes()...)
	buf = append(buf, p.T.Bytes()...)
	return buf
}

// ReadBulletproof Decodes a proof; V stays empty and is expanded from outPk
// by the caller.
func ReadBulletproof(reader utils.ReaderAndByteReader) (p *bulletproofs.Proof, err error) {
	p = &bulletproofs.Proof{}
	if err = readPoint(reader, &p.A); err != nil {
		return nil, err
	}
	if err = readPoint(reader, &p.S); err != nil {
		return nil, err
	}
	if err = readPoint(reader, &p.T1); err != nil {
		return nil, err
	}
	if err = readPoint(reader, &p.T2); err != nil {
		return nil, err
	}
	if err = readScalar(reader, &p.TauX); err != nil {
		return nil, err
	}
	if err = readScalar(reader, &p.Mu); err != nil {
		return nil, err
	}
	var n uint64
	if n, err = utils.ReadCanonicalUvarint(reader); err != nil {
		return nil, err
	}
	if n > uint64(bulletproofs.LogCommitmentBits+4) {
		return nil, ErrInvalidEncoding
	}
	p.L = make([]curve25519.Point, n)
	for i := range p.L {
		if err = readPoint(reader, &p.L[i]); err != nil {
			return nil, err
		}
	}
	if n, err = utils.ReadCanonicalUvarint(reader); err != nil {
		return nil, err
	}
	if n != uint64(len(p.L)) {
		return nil, ErrInvalidEncoding
	}
	p.R = make([]curve25519.Point, n)
	for i := range p.R {
		if err = readPoint(reader, &p.R[i]); err != nil {
			return nil, err
		}
	}
	if err = readScalar(reader, &p.Aa); err != nil {
		return nil, err
	}
	if err = readScalar(reader, &p.Bb); err != nil {
		return nil, err
	}
	if err = readScalar(reader, &p.T); err != nil {
		return nil, err
	}
	return p, nil
}

// AppendCLSAG The canonical prunable encoding: responses, first challenge,
// auxiliary key image. The primary key image is carried by the transaction
// input.
func AppendCLSAG(buf []byte, sig *clsag.Signature) []byte {
	for i := range sig.S {
		buf = append(buf, sig.S[i].Bytes()...)
	}
	buf = append(buf, sig.C1.Bytes()...)
	buf = append(buf, sig.D[:]...)
	return buf
}

func ReadCLSAG(reader utils.ReaderAndByteReader, ringSize int, keyImage curve25519.PublicKeyBytes) (sig clsag.Signature, err error) {
	sig.S = make([]curve25519.Scalar, ringSize)
	for i := range sig.S {
		if err = readScalar(reader, &sig.S[i]); err != nil {
			return sig, err
		}
	}
	if err = readScalar(reader, &sig.C1); err != nil {
		return sig, err
	}
	if _, err = utils.ReadFullNoEscape(reader, sig.D[:]); err != nil {
		return sig, err
	}
	sig.I = keyImage
	return sig, nil
}

// AppendMLSAG The canonical prunable encoding of a legacy MLSAG: the scalar
// matrix then the closing challenge. Key images ride with the inputs.
func AppendMLSAG(buf []byte, sig *mlsag.Signature) []byte {
	for i := range sig.SS {
		for j := range sig.SS[i] {
			buf = append(buf, sig.SS[i][j].Bytes()...)
		}
	}
	buf = append(buf, sig.CC.Bytes()...)
	return buf
}

func ReadMLSAG(reader utils.ReaderAndByteReader, cols, rows int, keyImages []curve25519.PublicKeyBytes) (sig mlsag.Signature, err error) {
	sig.SS = make([][]curve25519.Scalar, cols)
	for i := range sig.SS {
		sig.SS[i] = make([]curve25519.Scalar, rows)
		for j := range sig.SS[i] {
			if err = readScalar(reader, &sig.SS[i][j]); err != nil {
				return sig, err
			}
		}
	}
	if err = readScalar(reader, &sig.CC); err != nil {
		return sig, err
	}
	sig.II = keyImages
	return sig, nil
}

// AppendBorromeanRange The canonical prunable encoding of a legacy range
// signature
func AppendBorromeanRange(buf []byte, rs *borromean.Range) []byte {
	for i := range rs.Signatures.S0 {
		buf = append(buf, rs.Signatures.S0[i][:]...)
	}
	for i := range rs.Signatures.S1 {
		buf = append(buf, rs.Signatures.S1[i][:]...)
	}
	buf = append(buf, rs.Signatures.EE.Bytes()...)
	for i := range rs.Ci {
		buf = append(buf, rs.Ci[i][:]...)
	}
	return buf
}

func ReadBorromeanRange(reader utils.ReaderAndByteReader) (rs borromean.Range, err error) {
	for i := range rs.Signatures.S0 {
		if _, err = utils.ReadFullNoEscape(reader, rs.Signatures.S0[i][:]); err != nil {
			return rs, err
		}
	}
	for i := range rs.Signatures.S1 {
		if _, err = utils.ReadFullNoEscape(reader, rs.Signatures.S1[i][:]); err != nil {
			return rs, err
		}
	}
	if err = readScalar(reader, &rs.Signatures.EE); err != nil {
		return rs, err
	}
	for i := range rs.Ci {
		if _, err = utils.ReadFullNoEscape(reader, rs.Ci[i][:]); err != nil {
			return rs, err
		}
	}
	return rs, nil
}
