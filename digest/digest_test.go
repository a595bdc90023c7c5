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

import "testing"

func TestKeyedDeterministic(t *testing.T) {
	h := New256()
	a := h.Sum([]byte("leaf"))
	b := h.Sum([]byte("leaf"))
	if string(a) != string(b) {
		t.Fatalf("hash is not deterministic: %x != %x", a, b)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 byte digest, got %d", len(a))
	}
}

func TestKeyedDomainSeparation(t *testing.T) {
	soft := Keyed(32, []byte{0x00})
	hard := Keyed(32, []byte{0x01})
	a := soft.Sum([]byte("same bytes"))
	b := hard.Sum([]byte("same bytes"))
	if string(a) == string(b) {
		t.Fatalf("distinct domain tags produced colliding digests")
	}
}

func TestNew256MatchesUnkeyed(t *testing.T) {
	a := New256().Sum([]byte("x"))
	b := Keyed(32, nil).Sum([]byte("x"))
	if string(a) != string(b) {
		t.Fatalf("New256 should be equivalent to Keyed(32, nil)")
	}
}

func TestMiMCDeterministicAndFixedWidth(t *testing.T) {
	h := MiMC()
	a := h.Sum([]byte("leaf"))
	b := h.Sum([]byte("leaf"))
	if string(a) != string(b) {
		t.Fatalf("MiMC hash is not deterministic")
	}
	if len(a) != h.Size() || h.Size() != 32 {
		t.Fatalf("expected 32 byte MiMC digest, got %d", len(a))
	}
}

func TestHashersDisagree(t *testing.T) {
	in := []byte("disambiguation")
	if string(New256().Sum(in)) == string(MiMC().Sum(in)) {
		t.Fatalf("distinct hash families should not collide on the same input")
	}
}
