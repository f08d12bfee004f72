/*
Copyright © 2026 the nc2tif authors.
This file is part of nc2tif.

nc2tif is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

nc2tif is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with nc2tif.  If not, see <http://www.gnu.org/licenses/>.
*/

package ncfile

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// classic reads NetCDF classic (CDF-1) and 64-bit offset (CDF-2) files.
type classic struct {
	f    *os.File
	nc   *cdf.File
	nrec int // number of records along the unlimited dimension
}

func openClassic(f *os.File) (*classic, error) {
	nc, err := cdf.Open(f)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return &classic{
		f:    f,
		nc:   nc,
		nrec: int(nc.Header.NumRecs(fi.Size())),
	}, nil
}

func (c *classic) hasVariable(name string) bool {
	for _, v := range c.nc.Header.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

// shape returns the variable's dimension lengths, with the record
// dimension replaced by the number of records in the file.
func (c *classic) shape(name string) ([]int, bool) {
	l := c.nc.Header.Lengths(name)
	shape := make([]int, len(l))
	copy(shape, l)
	if c.nc.Header.IsRecordVariable(name) {
		shape[0] = c.nrec
	}
	return shape, true
}

// read reads n values starting at index begin and ending at index end
// (inclusive).
func (c *classic) read(name string, begin, end []int, n int) ([]float64, error) {
	if n == 0 {
		return []float64{}, nil
	}
	r := c.nc.Reader(name, begin, end)
	buf := r.Zero(n)
	if _, err := r.Read(buf); err != nil {
		return nil, err
	}
	return float64s(buf)
}

func (c *classic) readVariable(name string) ([]float64, error) {
	shape, _ := c.shape(name)
	if len(shape) != 1 {
		return nil, VariableShapeError{Name: name, Shape: shape, Reason: "must be one-dimensional"}
	}
	return c.read(name, []int{0}, []int{shape[0] - 1}, shape[0])
}

func (c *classic) readSlice(name string, index, ny, nx int) ([]float64, error) {
	shape, _ := c.shape(name)
	if len(shape) != 3 {
		return nil, fmt.Errorf("variable is %d-dimensional", len(shape))
	}
	if index < 0 || index >= shape[0] {
		return nil, fmt.Errorf("time index %d out of range [0, %d)", index, shape[0])
	}
	return c.read(name, []int{index, 0, 0}, []int{index, ny - 1, nx - 1}, ny*nx)
}

func (c *classic) globalAttribute(name string) (interface{}, bool) {
	return c.attribute("", name)
}

func (c *classic) attribute(v, name string) (interface{}, bool) {
	a := c.nc.Header.GetAttribute(v, name)
	return a, a != nil
}

func (c *classic) close() error { return c.f.Close() }
