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
	"path"

	"github.com/scigolib/hdf5"
)

// netCDF4 reads NetCDF-4 files, which are HDF5 files with variables
// stored as datasets in the root group and global attributes stored on
// the root group.
type netCDF4 struct {
	f        *hdf5.File
	datasets map[string]*hdf5.Dataset
}

func openNetCDF4(filename string) (*netCDF4, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, err
	}
	n := &netCDF4{
		f:        f,
		datasets: make(map[string]*hdf5.Dataset),
	}
	for _, obj := range f.Root().Children() {
		if ds, ok := obj.(*hdf5.Dataset); ok {
			n.datasets[path.Base(ds.Name())] = ds
		}
	}
	return n, nil
}

func (n *netCDF4) hasVariable(name string) bool {
	_, ok := n.datasets[name]
	return ok
}

// shape is not available from the public dataset API; callers derive
// it from the coordinate variables.
func (n *netCDF4) shape(string) ([]int, bool) { return nil, false }

func (n *netCDF4) readVariable(name string) ([]float64, error) {
	ds, ok := n.datasets[name]
	if !ok {
		return nil, MissingVariableError{Name: name}
	}
	return ds.Read()
}

func (n *netCDF4) readSlice(name string, index, ny, nx int) ([]float64, error) {
	ds, ok := n.datasets[name]
	if !ok {
		return nil, MissingVariableError{Name: name}
	}
	if ny == 0 || nx == 0 {
		return []float64{}, nil
	}
	data, err := ds.ReadSlice(
		[]uint64{uint64(index), 0, 0},
		[]uint64{1, uint64(ny), uint64(nx)},
	)
	if err != nil {
		return nil, err
	}
	o, err := float64s(data)
	if err != nil {
		return nil, err
	}
	if len(o) != ny*nx {
		return nil, fmt.Errorf("read %d values but expected %d", len(o), ny*nx)
	}
	return o, nil
}

func (n *netCDF4) globalAttribute(name string) (interface{}, bool) {
	attrs, err := n.f.Root().Attributes()
	if err != nil {
		return nil, false
	}
	for _, a := range attrs {
		if a.Name != name {
			continue
		}
		v, err := a.ReadValue()
		if err != nil {
			return nil, false
		}
		return v, true
	}
	return nil, false
}

func (n *netCDF4) attribute(v, name string) (interface{}, bool) {
	if v == "" {
		return n.globalAttribute(name)
	}
	ds, ok := n.datasets[v]
	if !ok {
		return nil, false
	}
	attrs, err := ds.Attributes()
	if err != nil {
		return nil, false
	}
	for _, a := range attrs {
		if a.Name != name {
			continue
		}
		val, err := a.ReadValue()
		if err != nil {
			return nil, false
		}
		return val, true
	}
	return nil, false
}

func (n *netCDF4) close() error { return n.f.Close() }
