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

package nc2tif

import (
	"fmt"
	"strings"

	"github.com/ctessum/geom/proj"
)

// DescribeCRS parses a WKT or PROJ.4 spatial reference and returns a
// short summary of it.
func DescribeCRS(desc string) (string, error) {
	sr, err := proj.Parse(desc)
	if err != nil {
		return "", fmt.Errorf("nc2tif: parsing spatial reference: %v", err)
	}
	parts := []string{sr.Name}
	if sr.DatumCode != "" {
		parts = append(parts, "datum="+sr.DatumCode)
	} else if sr.Ellps != "" {
		parts = append(parts, "ellps="+sr.Ellps)
	}
	if sr.Units != "" {
		parts = append(parts, "units="+sr.Units)
	}
	return strings.Join(parts, " "), nil
}
