package math3d

import "testing"

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// A cube face normal (1,0,0) under scale (2,1,0.5) should come out
	// direction-preserved but length-changed by the inverse-transpose,
	// and renormalize back to (1,0,0).
	s := Scale(V3(2, 1, 0.5))
	nm := NormalMatrix(s)

	got := nm.MulVec3(V3(1, 0, 0)).Normalize()
	want := V3(1, 0, 0)

	const eps = 1e-9
	if diff := got.Sub(want).Len(); diff > eps {
		t.Errorf("NormalMatrix(scale).MulVec3((1,0,0)) = %+v, want %+v (diff %v)", got, want, diff)
	}
}

func TestNormalMatrixIdentityForRotation(t *testing.T) {
	r := RotateY(0.7)
	nm := NormalMatrix(r)
	ul := UpperLeft3x3(r)

	for i := range nm {
		if diff := nm[i] - ul[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("NormalMatrix of a pure rotation should equal the rotation itself, element %d: got %v want %v", i, nm[i], ul[i])
		}
	}
}

func TestMat3DeterminantSingular(t *testing.T) {
	m := Mat3{0, 0, 0, 0, 0, 0, 0, 0, 0}
	inv := m.Inverse()
	if inv != (Mat3{}) {
		t.Errorf("Inverse of a singular matrix should be the zero matrix, got %+v", inv)
	}
}
