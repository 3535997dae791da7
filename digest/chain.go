// This file is part of tasengine.
//
// tasengine is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// tasengine is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with tasengine.  If not, see <https://www.gnu.org/licenses/>.

package digest

import (
	"crypto/sha1"
	"fmt"
)

// Chain is a digest of a sequence of entries. Each entry is hashed together
// with the digest of the entries before it, so the order of entries matters.
type Chain struct {
	digest [sha1.Size]byte
	buf    []byte
	count  int
}

// NewChain is the preferred method of initialisation for the Chain type.
func NewChain() *Chain {
	return &Chain{}
}

func (dig *Chain) String() string {
	return fmt.Sprintf("%d entries: %s", dig.count, dig.Hash())
}

// Add an entry to the digest.
func (dig *Chain) Add(entry []byte) {
	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the data
	dig.buf = append(dig.buf[:0], dig.digest[:]...)
	dig.buf = append(dig.buf, entry...)
	dig.digest = sha1.Sum(dig.buf)
	dig.count++
}

// Count returns the number of entries added since the last reset.
func (dig *Chain) Count() int {
	return dig.count
}

// Hash implements digest.Digest interface
func (dig *Chain) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface
func (dig *Chain) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	dig.count = 0
}
