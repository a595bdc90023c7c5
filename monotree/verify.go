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

package monotree

import "bytes"

// Verify statelessly recomputes a root hash from (key, leaf, proof)
// and reports whether it matches root. It never touches the store and
// never fails: an unrecognized prefix or a final mismatch both result
// in false.
func (t *Tree) Verify(root, key, leaf []byte, proof []Step) bool {
	h := append([]byte(nil), leaf...)
	for i := len(proof) - 1; i >= 0; i-- {
		step := proof[i]
		switch step.Prefix {
		case 0x00:
			buf := make([]byte, 0, len(h)+len(step.Cut))
			buf = append(buf, h...)
			buf = append(buf, step.Cut...)
			h = t.hash.Sum(buf)
		case 0x01:
			if len(step.Cut) == 0 {
				return false
			}
			body, tag := step.Cut[:len(step.Cut)-1], step.Cut[len(step.Cut)-1:]
			buf := make([]byte, 0, len(body)+len(h)+len(tag))
			buf = append(buf, body...)
			buf = append(buf, h...)
			buf = append(buf, tag...)
			h = t.hash.Sum(buf)
		default:
			return false
		}
	}
	return bytes.Equal(h, root)
}
