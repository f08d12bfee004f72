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

import "fmt"

// DatasetOpenError is returned when a file cannot be opened or is not
// a NetCDF dataset that can be read.
type DatasetOpenError struct {
	Path string
	Err  error
}

func (err DatasetOpenError) Error() string {
	return fmt.Sprintf("ncfile: opening dataset %s: %v", err.Path, err.Err)
}

func (err DatasetOpenError) Unwrap() error { return err.Err }

// MissingVariableError reports a required variable that is absent from
// the dataset.
type MissingVariableError struct {
	Name string
}

func (err MissingVariableError) Error() string {
	return fmt.Sprintf("ncfile: required variable `%s` not found in dataset", err.Name)
}

// MissingAttributeError reports a required attribute that is absent
// or has an unusable value.
type MissingAttributeError struct {
	Name   string
	Reason string
}

func (err MissingAttributeError) Error() string {
	if err.Reason == "" {
		return fmt.Sprintf("ncfile: required global attribute `%s` not found in dataset", err.Name)
	}
	return fmt.Sprintf("ncfile: global attribute `%s`: %s", err.Name, err.Reason)
}

// VariableShapeError is returned when a variable's dimensions do not
// match the layout ET(time, lat, lon).
type VariableShapeError struct {
	Name   string
	Shape  []int
	Reason string
}

func (err VariableShapeError) Error() string {
	return fmt.Sprintf("ncfile: variable `%s` with shape %v: %s", err.Name, err.Shape, err.Reason)
}

// VariableReadError wraps a failure reading variable data.
type VariableReadError struct {
	Name string
	Err  error
}

func (err VariableReadError) Error() string {
	return fmt.Sprintf("ncfile: reading variable `%s`: %v", err.Name, err.Err)
}

func (err VariableReadError) Unwrap() error { return err.Err }
