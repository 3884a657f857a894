package types

import "time"

// ToolConfig describes how to reach the external conversion tool.
type ToolConfig struct {
	// Interpreter is the program that runs the entry script (default "python").
	Interpreter string `json:"interpreter" yaml:"interpreter" mapstructure:"interpreter"`

	// EntryScript is the CLI script, relative to Dir (default "cli.py").
	EntryScript string `json:"entry_script" yaml:"entry_script" mapstructure:"entry_script"`

	// ProbeToken must appear in the interpreter's version output for the
	// connection probe to pass (default "Python").
	ProbeToken string `json:"probe_token" yaml:"probe_token" mapstructure:"probe_token"`

	// Dir overrides the directory the tool runs from. Empty means the
	// directory containing the loaded shim library.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty" mapstructure:"dir"`

	// Quiet appends the tool's suppress-interactive flag (default true).
	Quiet bool `json:"quiet" yaml:"quiet" mapstructure:"quiet"`

	// Timeout bounds each subprocess. Zero means wait indefinitely, which is
	// how the legacy DLL has always behaved.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// ShimConfig groups all settings for the shim and its CLI.
type ShimConfig struct {
	Tool ToolConfig `json:"tool" yaml:"tool" mapstructure:"tool"`

	// JournalPath is the SQLite file the CLI records conversions in.
	// Empty disables the journal. The DLL never writes one.
	JournalPath string `json:"journal_path,omitempty" yaml:"journal_path,omitempty" mapstructure:"journal_path"`

	// DLLName is the library file name used in generated host declarations.
	DLLName string `json:"dll_name" yaml:"dll_name" mapstructure:"dll_name"`
}
