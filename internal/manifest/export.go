// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"fmt"
	"io"
	"text/tabwriter"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every manifest record to w as a YAML document.
func (s *Store) ExportYAML(w io.Writer) error {
	records, err := s.List()
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// WriteTable writes the manifest to w as an aligned text table.
func (s *Store) WriteTable(w io.Writer) error {
	records, err := s.List()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REL PATH\tSTATUS\tSIZE\tCONVERTED AT\tERROR")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", r.RelPath, r.Status, r.Size, r.ConvertedAt, r.Error)
	}
	return tw.Flush()
}
