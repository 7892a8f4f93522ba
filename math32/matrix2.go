// Copyright (c) 2025, The Weft Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/weft-ui/weft/base/errors"
)

// Matrix2 is a 2D affine transformation matrix, which can perform
// rotation, scaling, shearing, and translation of 2D points and vectors.
// It is the full 3x3 matrix with the last row constant at 0, 0, 1,
// stored in the SVG column order: x' = XX*x + XY*y + X0.
type Matrix2 struct {
	XX, YX, XY, YY, X0, Y0 float32
}

// Identity2 returns a new identity [Matrix2].
func Identity2() Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
		0, 0,
	}
}

// IsIdentity returns whether the matrix is the identity transform.
func (m Matrix2) IsIdentity() bool {
	return m == Identity2()
}

// Translate2D returns a new [Matrix2] that translates by the given amounts.
func Translate2D(x, y float32) Matrix2 {
	return Matrix2{
		1, 0,
		0, 1,
		x, y,
	}
}

// Scale2D returns a new [Matrix2] that scales by the given amounts.
func Scale2D(x, y float32) Matrix2 {
	return Matrix2{
		x, 0,
		0, y,
		0, 0,
	}
}

// Rotate2D returns a new [Matrix2] that rotates by the given angle in radians.
func Rotate2D(angle float32) Matrix2 {
	c := Cos(angle)
	s := Sin(angle)
	return Matrix2{
		c, s,
		-s, c,
		0, 0,
	}
}

// Shear2D returns a new [Matrix2] that shears by the given amounts.
func Shear2D(x, y float32) Matrix2 {
	return Matrix2{
		1, y,
		x, 1,
		0, 0,
	}
}

// Skew2D returns a new [Matrix2] that skews by the given angles in radians.
func Skew2D(x, y float32) Matrix2 {
	return Shear2D(Tan(x), Tan(y))
}

// Mul returns this matrix multiplied by the other given matrix.
// The multiplication order is the *reverse* of the logical application
// order: a.Mul(b) applies b first and then a, so for example
// Translate2D(..).Mul(Rotate2D(..)) rotates and then translates.
func (m Matrix2) Mul(o Matrix2) Matrix2 {
	return Matrix2{
		XX: m.XX*o.XX + m.XY*o.YX,
		YX: m.YX*o.XX + m.YY*o.YX,
		XY: m.XX*o.XY + m.XY*o.YY,
		YY: m.YX*o.XY + m.YY*o.YY,
		X0: m.XX*o.X0 + m.XY*o.Y0 + m.X0,
		Y0: m.YX*o.X0 + m.YY*o.Y0 + m.Y0,
	}
}

// MulVector2AsPoint multiplies the given 2D point by the matrix,
// including the translation factors.
func (m Matrix2) MulVector2AsPoint(v Vector2) Vector2 {
	return Vector2{
		X: m.XX*v.X + m.XY*v.Y + m.X0,
		Y: m.YX*v.X + m.YY*v.Y + m.Y0,
	}
}

// MulVector2AsVector multiplies the given 2D vector by the matrix,
// without the translation factors.
func (m Matrix2) MulVector2AsVector(v Vector2) Vector2 {
	return Vector2{
		X: m.XX*v.X + m.XY*v.Y,
		Y: m.YX*v.X + m.YY*v.Y,
	}
}

// Determinant returns the determinant of the matrix.
func (m Matrix2) Determinant() float32 {
	return m.XX*m.YY - m.XY*m.YX
}

// Inverse returns the inverse of the matrix, such that
// m.Mul(m.Inverse()) is the identity. It returns the identity
// if the matrix is singular.
func (m Matrix2) Inverse() Matrix2 {
	det := m.Determinant()
	if det == 0 {
		return Identity2()
	}
	id := 1 / det
	return Matrix2{
		XX: m.YY * id,
		YX: -m.YX * id,
		XY: -m.XY * id,
		YY: m.XX * id,
		X0: (m.XY*m.Y0 - m.YY*m.X0) * id,
		Y0: (m.YX*m.X0 - m.XX*m.Y0) * id,
	}
}

// Translate returns the matrix translated by the given amounts
// (applied before the existing transform).
func (m Matrix2) Translate(x, y float32) Matrix2 {
	return m.Mul(Translate2D(x, y))
}

// Scale returns the matrix scaled by the given amounts
// (applied before the existing transform).
func (m Matrix2) Scale(x, y float32) Matrix2 {
	return m.Mul(Scale2D(x, y))
}

// Rotate returns the matrix rotated by the given angle in radians
// (applied before the existing transform).
func (m Matrix2) Rotate(angle float32) Matrix2 {
	return m.Mul(Rotate2D(angle))
}

// ExtractRot extracts the rotation angle of the matrix in radians.
func (m Matrix2) ExtractRot() float32 {
	return Atan2(m.YX, m.XX)
}

// ExtractXYScale extracts the X and Y scale factors of the matrix.
func (m Matrix2) ExtractXYScale() (scx, scy float32) {
	scx = Hypot(m.XX, m.YX)
	scy = Hypot(m.XY, m.YY)
	return
}

// Pos returns the translation components of the matrix as a [Vector2].
func (m Matrix2) Pos() Vector2 {
	return Vector2{m.X0, m.Y0}
}

// String returns the CSS-style transform representation of the matrix,
// using the simplest function that fully represents it: "none" for the
// identity, translate and/or scale when only those are present, and the
// full matrix function otherwise.
func (m Matrix2) String() string {
	if m.IsIdentity() {
		return "none"
	}
	if m.YX == 0 && m.XY == 0 { // no rotation or shearing
		tr := ""
		if m.X0 != 0 || m.Y0 != 0 {
			tr = fmt.Sprintf("translate(%s,%s)", f32s(m.X0), f32s(m.Y0))
		}
		sc := ""
		if m.XX != 1 || m.YY != 1 {
			sc = fmt.Sprintf("scale(%s,%s)", f32s(m.XX), f32s(m.YY))
		}
		if tr != "" && sc != "" {
			return tr + " " + sc
		}
		return tr + sc
	}
	return fmt.Sprintf("matrix(%s,%s,%s,%s,%s,%s)",
		f32s(m.XX), f32s(m.YX), f32s(m.XY), f32s(m.YY), f32s(m.X0), f32s(m.Y0))
}

// f32s formats the given float32 compactly.
func f32s(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// SetString sets the matrix from the given CSS-style transform string,
// which can contain any number of transform functions, applied in order
// (e.g., "translate(1, 2) scale(2, 2)"). It returns an error and resets
// the matrix to the identity for any unrecognized function.
func (m *Matrix2) SetString(str string) error {
	*m = Identity2()
	str = strings.ToLower(strings.TrimSpace(str))
	if str == "none" || str == "" {
		return nil
	}
	// could have multiple transforms
	for {
		pidx := strings.IndexByte(str, '(')
		if pidx < 0 {
			err := fmt.Errorf("math32.Matrix2.SetString: no params for transform: %q", str)
			return errors.Log(err)
		}
		fun := strings.TrimSpace(str[:pidx])
		rest := str[pidx+1:]
		eidx := strings.IndexByte(rest, ')')
		if eidx < 0 {
			err := fmt.Errorf("math32.Matrix2.SetString: no end paren for transform: %q", str)
			return errors.Log(err)
		}
		vals, err := readPoints(rest[:eidx])
		if err != nil {
			return errors.Log(err)
		}
		if err := m.applyTransform(fun, vals); err != nil {
			*m = Identity2()
			return errors.Log(err)
		}
		str = strings.TrimSpace(rest[eidx+1:])
		if str == "" {
			return nil
		}
	}
}

// applyTransform applies the given named transform function with the
// given parameter values to the matrix.
func (m *Matrix2) applyTransform(fun string, vals []float32) error {
	n := len(vals)
	switch fun {
	case "matrix":
		if n != 6 {
			return errParamCount(fun, n)
		}
		*m = m.Mul(Matrix2{vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]})
	case "translate":
		switch n {
		case 1:
			*m = m.Translate(vals[0], 0)
		case 2:
			*m = m.Translate(vals[0], vals[1])
		default:
			return errParamCount(fun, n)
		}
	case "translatex":
		if n != 1 {
			return errParamCount(fun, n)
		}
		*m = m.Translate(vals[0], 0)
	case "translatey":
		if n != 1 {
			return errParamCount(fun, n)
		}
		*m = m.Translate(0, vals[0])
	case "scale":
		switch n {
		case 1:
			*m = m.Scale(vals[0], vals[0])
		case 2:
			*m = m.Scale(vals[0], vals[1])
		default:
			return errParamCount(fun, n)
		}
	case "rotate":
		if n != 1 {
			return errParamCount(fun, n)
		}
		*m = m.Rotate(DegToRad(vals[0]))
	case "skew":
		if n != 2 {
			return errParamCount(fun, n)
		}
		*m = m.Mul(Skew2D(DegToRad(vals[0]), DegToRad(vals[1])))
	case "skewx":
		if n != 1 {
			return errParamCount(fun, n)
		}
		*m = m.Mul(Skew2D(DegToRad(vals[0]), 0))
	case "skewy":
		if n != 1 {
			return errParamCount(fun, n)
		}
		*m = m.Mul(Skew2D(0, DegToRad(vals[0])))
	default:
		return fmt.Errorf("math32.Matrix2.SetString: unknown transform function: %q", fun)
	}
	return nil
}

func errParamCount(fun string, n int) error {
	return fmt.Errorf("math32.Matrix2.SetString: invalid number of parameters (%d) for %q", n, fun)
}

// readPoints reads a set of comma or space separated float32 values.
func readPoints(str string) ([]float32, error) {
	str = strings.TrimSpace(str)
	if str == "" {
		return nil, nil
	}
	fields := strings.FieldsFunc(str, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	vals := make([]float32, len(fields))
	for i, fd := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(fd), 32)
		if err != nil {
			return nil, err
		}
		vals[i] = float32(v)
	}
	return vals, nil
}
