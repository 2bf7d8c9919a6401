package series

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes the series with a t,theta,omega,is_sampled header.
func WriteCSV(w io.Writer, s *Series) error {
	if err := s.Validate(); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"t", "theta", "omega", "is_sampled"}); err != nil {
		return err
	}

	for i := 0; i < s.Len(); i++ {
		row := []string{
			strconv.FormatFloat(s.T[i], 'g', -1, 64),
			strconv.FormatFloat(s.Theta[i], 'g', -1, 64),
			strconv.FormatFloat(s.Omega[i], 'g', -1, 64),
			strconv.FormatBool(s.Sampled[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
