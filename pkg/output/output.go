package output

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"
	json "github.com/json-iterator/go"
	"github.com/perchapp/cli/pkg/config"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	infoColor    = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
)

// GetOutputFormat returns the configured output format
func GetOutputFormat() OutputFormat {
	if config.GetString("output.format") == "json" {
		return FormatJSON
	}
	return FormatText
}

// ValidateOutputFormat checks if format is valid
func ValidateOutputFormat(format string) bool {
	return format == "json" || format == "text"
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	successColor.Printf(format+"\n", args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	errorColor.Fprintf(os.Stderr, format+"\n", args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	infoColor.Printf(format+"\n", args...)
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	warnColor.Printf(format+"\n", args...)
}

// PrintJSON prints data as indented JSON
func PrintJSON(data interface{}) error {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// PrintKeyValue prints key-value pairs aligned in columns
func PrintKeyValue(data map[string]interface{}) {
	if GetOutputFormat() == FormatJSON {
		_ = PrintJSON(data)
		return
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "%s:\t%v\n", k, data[k])
	}
	w.Flush()
}
