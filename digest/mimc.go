// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package digest

import "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"

// mimcBN254Size is the byte width of a bn254 scalar field element,
// which is also the fixed output size of the MiMC permutation below.
const mimcBN254Size = 32

// mimcChunk is the number of input bytes absorbed per field element.
// 31 bytes left-padded to 32 is always below the bn254 modulus, so the
// underlying writer never rejects a block as a non-canonical element.
const mimcChunk = mimcBN254Size - 1

type mimcHasher struct{}

// MiMC returns a Hasher backed by the MiMC permutation over the bn254
// scalar field. A tree built on this Hasher can have its insert and
// proof-verification steps expressed as arithmetic circuit constraints,
// which the blake2b-based default cannot.
func MiMC() Hasher {
	return mimcHasher{}
}

func (mimcHasher) Size() int { return mimcBN254Size }

func (mimcHasher) Sum(data []byte) []byte {
	h := mimc.NewMiMC()
	var block [mimcBN254Size]byte
	for start := 0; start < len(data) || start == 0; start += mimcChunk {
		end := start + mimcChunk
		if end > len(data) {
			end = len(data)
		}
		chunk := data[start:end]
		for i := range block {
			block[i] = 0
		}
		copy(block[mimcBN254Size-len(chunk):], chunk)
		if _, err := h.Write(block[:]); err != nil {
			// Unreachable: a left-padded 31-byte block is always a
			// canonical field element.
			panic(err)
		}
	}
	return h.Sum(nil)
}
