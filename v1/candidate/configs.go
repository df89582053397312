package candidate

import (
	"fmt"
	"regexp"
)

const (
	DefaultTargetTable = "requirements"
	DefaultLabelColumn = "title"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Config names the table holding match targets and the column used as their
// label in diagnostics.
type Config struct {
	TargetTable string `koanf:"target_table"`
	LabelColumn string `koanf:"label_column"`

	// AutoMigrate creates the tag_matches table on start. Meant for local
	// development; production schemas are owned elsewhere.
	AutoMigrate bool `koanf:"auto_migrate"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.TargetTable == "" {
		c.TargetTable = DefaultTargetTable
	}
	if c.LabelColumn == "" {
		c.LabelColumn = DefaultLabelColumn
	}
}

// Validate rejects table and column names that are not plain identifiers,
// since both are interpolated into SQL.
func (c *Config) Validate() error {
	if !identifier.MatchString(c.TargetTable) {
		return fmt.Errorf("candidate: invalid target table %q", c.TargetTable)
	}
	if !identifier.MatchString(c.LabelColumn) {
		return fmt.Errorf("candidate: invalid label column %q", c.LabelColumn)
	}
	return nil
}
