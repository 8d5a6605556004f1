/*package eq is a simple package for telling whether two arrays are equal to
one another.*/
package eq

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Float64s returns true if two []float64 arrays are the same and false
// otherwise.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i]+eps < y[i] || x[i]-eps > y[i] {
			return false
		}
	}
	return true
}

// Vec64s returns true if two [][3]float64 arrays are the same and false
// otherwise.
func Vec64s(x, y [][3]float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Vec64sEps returns true if the two [][3]float64 arrays are within eps of
// one another component by component and false otherwise.
func Vec64sEps(x, y [][3]float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		for k := 0; k < 3; k++ {
			if x[i][k]+eps < y[i][k] || x[i][k]-eps > y[i][k] {
				return false
			}
		}
	}
	return true
}

// Sym64s returns true if two [][6]float64 arrays (rows of symmetric tensor
// components) are the same and false otherwise.
func Sym64s(x, y [][6]float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

// Sym64sEps returns true if the two [][6]float64 arrays are within eps of
// one another component by component and false otherwise.
func Sym64sEps(x, y [][6]float64, eps float64) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		for k := 0; k < 6; k++ {
			if x[i][k]+eps < y[i][k] || x[i][k]-eps > y[i][k] {
				return false
			}
		}
	}
	return true
}
