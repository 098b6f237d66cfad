// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tournament

import (
	"crypto/sha256"
	"encoding/binary"

	"github.com/luxfi/bitcell/grid"
)

// CommitmentHash computes the canonical commitment hash H(glider||nonce)
// (§3, §6): the glider encoded as (pattern_id: u8, origin.x: u16,
// origin.y: u16, energy: u8) in little-endian, followed by the
// length-prefixed nonce.
func CommitmentHash(g grid.Glider, nonce []byte) [32]byte {
	buf := make([]byte, 0, 6+4+len(nonce))
	buf = append(buf, byte(g.Pattern))

	var xy [4]byte
	binary.LittleEndian.PutUint16(xy[0:2], uint16(g.Origin.X))
	binary.LittleEndian.PutUint16(xy[2:4], uint16(g.Origin.Y))
	buf = append(buf, xy[:]...)
	buf = append(buf, byte(g.Energy))

	var nonceLen [4]byte
	binary.LittleEndian.PutUint32(nonceLen[:], uint32(len(nonce)))
	buf = append(buf, nonceLen[:]...)
	buf = append(buf, nonce...)

	return sha256.Sum256(buf)
}
