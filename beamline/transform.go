package beamline

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// Mat4 is a 4x4 homogeneous transform, row-major: applying it to a
// point is p' = M * [p.x, p.y, p.z, 1]^T (column-vector-on-the-right
// convention — see DESIGN.md decision on transform storage). Kept as a
// plain array rather than a [][]float64 because every element's pair
// of transforms is tiny, fixed-size, and copied wholesale into
// CompiledElement; composing the misalignment's constituent rotations
// still goes through la.MatAlloc/la.MatMul (mulMat3 below), the same
// allocate-multiply-copy-out shape shp.go's Jacobian assembly uses.
type Mat4 [4][4]float64

// Identity4 returns the 4x4 identity transform.
func Identity4() Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// MulMat4 returns a*b.
func MulMat4(a, b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += a[i][k] * b[k][j]
			}
			out[i][j] = s
		}
	}
	return out
}

// Apply transforms a point (w=1 implicit).
func (m Mat4) Apply(p [3]float64) [3]float64 {
	var out [3]float64
	v := [4]float64{p[0], p[1], p[2], 1}
	for i := 0; i < 3; i++ {
		var s float64
		for k := 0; k < 4; k++ {
			s += m[i][k] * v[k]
		}
		out[i] = s
	}
	return out
}

// ApplyVector transforms a direction (w=0 implicit, so translation
// doesn't affect it).
func (m Mat4) ApplyVector(p [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*p[0] + m[i][1]*p[1] + m[i][2]*p[2]
	}
	return out
}

// translation4 builds a pure-translation transform.
func translation4(t [3]float64) Mat4 {
	m := Identity4()
	m[0][3], m[1][3], m[2][3] = t[0], t[1], t[2]
	return m
}

// rotation4 embeds a 3x3 rotation (row-major, via gosl/la-allocated
// scratch matrices during composition) into the upper-left block of a
// 4x4 transform.
func rotation4(r [3][3]float64) Mat4 {
	m := Identity4()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = r[i][j]
		}
	}
	return m
}

// rotX/rotY/rotZ are the elementary rotation matrices about the
// element's local x, y, z axes, angle in radians.
func rotX(a float64) [3][3]float64 {
	c, s := math.Cos(a), math.Sin(a)
	return [3][3]float64{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}
func rotY(a float64) [3][3]float64 {
	c, s := math.Cos(a), math.Sin(a)
	return [3][3]float64{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}
func rotZ(a float64) [3][3]float64 {
	c, s := math.Cos(a), math.Sin(a)
	return [3][3]float64{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// mulMat3 multiplies two 3x3 matrices via gosl/la scratch buffers,
// the same la.MatAlloc-then-la.MatMul shape shp.go's dSdx := dSdR*dRdx
// Jacobian assembly uses, rather than a hand-rolled triple loop.
func mulMat3(a, b [3][3]float64) [3][3]float64 {
	A := la.MatAlloc(3, 3)
	B := la.MatAlloc(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			A[i][j], B[i][j] = a[i][j], b[i][j]
		}
	}
	C := la.MatAlloc(3, 3)
	la.MatMul(C, 1, A, B)

	var out [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = C[i][j]
		}
	}
	return out
}

// Misalignment composes the 6-parameter (dx,dy,dz,dpsi,dphi,dchi)
// correction as translation x-rotation x-axis then y-axis then z-axis,
// per §4.2.
type Misalignment struct {
	Dx, Dy, Dz       float64
	Dpsi, Dphi, Dchi float64
}

// ToMat4 builds the misalignment's homogeneous transform.
func (m Misalignment) ToMat4() Mat4 {
	r := mulMat3(mulMat3(rotX(m.Dpsi), rotY(m.Dphi)), rotZ(m.Dchi))
	t := translation4([3]float64{m.Dx, m.Dy, m.Dz})
	return MulMat4(t, rotation4(r))
}

// Transforms builds the (in,out) pair for an element sitting at world
// position p with orientation R (row-major 3x3), per §4.2:
//
//	in_transform  = T(-p) · R
//	out_transform = R^T · T(p)
//
// with the misalignment multiplying onto in_transform from the right
// and its inverse multiplying onto out_transform from the left, so
// in_transform·out_transform = I continues to hold (§3, §8 invariant).
func Transforms(p [3]float64, r [3][3]float64, mis Misalignment) (in, out Mat4) {
	negP := [3]float64{-p[0], -p[1], -p[2]}
	in = MulMat4(translation4(negP), rotation4(r))
	out = MulMat4(rotation4(transpose3(r)), translation4(p))

	misIn := mis.ToMat4()
	misOut := misIn.inverseRigid()

	in = MulMat4(in, misIn)
	out = MulMat4(misOut, out)
	return in, out
}

func transpose3(r [3][3]float64) [3][3]float64 {
	var t [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			t[i][j] = r[j][i]
		}
	}
	return t
}

// inverseRigid inverts a transform known to be rigid (rotation +
// translation only, as every Misalignment and every element placement
// is): the inverse of [R|t] is [R^T | -R^T t].
func (m Mat4) inverseRigid() Mat4 {
	var r [3][3]float64
	var t [3]float64
	for i := 0; i < 3; i++ {
		t[i] = m[i][3]
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j]
		}
	}
	rt := transpose3(r)
	negRtT := [3]float64{
		-(rt[0][0]*t[0] + rt[0][1]*t[1] + rt[0][2]*t[2]),
		-(rt[1][0]*t[0] + rt[1][1]*t[1] + rt[1][2]*t[2]),
		-(rt[2][0]*t[0] + rt[2][1]*t[1] + rt[2][2]*t[2]),
	}
	out := rotation4(rt)
	out[0][3], out[1][3], out[2][3] = negRtT[0], negRtT[1], negRtT[2]
	return out
}
