package main

import (
	"os"
	"path/filepath"
	"testing"

	vcard "github.com/mbideau/vcardtools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsOverlaysOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("french_tweaks: true\nmatch_ratio: 90\n"), 0o644))

	opts := cliOptions{MatchApproxRatio: 100, MatchApproxMinLength: 5}
	require.NoError(t, loadConfigDefaults(path, &opts))

	assert.True(t, opts.FrenchTweaks)
	assert.Equal(t, 90, opts.MatchApproxRatio)
	assert.Equal(t, 5, opts.MatchApproxMinLength)
}

func TestLoadConfigDefaultsMissingFileErrors(t *testing.T) {
	var opts cliOptions
	err := loadConfigDefaults("/nonexistent/config.yaml", &opts)
	assert.Error(t, err)
}

func TestToVCardOptionsProjectsFields(t *testing.T) {
	cli := cliOptions{
		MatchAttributes:  []string{"names", "email"},
		FrenchTweaks:     true,
		NoForceEscapeCommas: true,
		VCardExtension:   ".vcf",
	}
	opts := cli.toVCardOptions()

	assert.Equal(t, []string{"names", "email"}, opts.MatchAttributes)
	assert.True(t, opts.FrenchTweaks)
	assert.True(t, opts.DoNotForceEscapeCommas)
	assert.Equal(t, ".vcf", opts.VCardExtension)
}

// TestToVCardOptionsZeroValueMatchesCoreDefaults pins down that a cliOptions
// with no flags set (the state go-flags leaves it in when the user passes
// none) projects onto the same MatchApproxSameFirstLetter/UpdateGroupKey
// values as vcard.DefaultOptions(), since those two core defaults are "on"
// and their cliOptions fields are spelled as negating "No*" flags.
func TestToVCardOptionsZeroValueMatchesCoreDefaults(t *testing.T) {
	var cli cliOptions
	opts := cli.toVCardOptions()

	defaults := vcard.DefaultOptions()
	assert.Equal(t, defaults.MatchApproxSameFirstLetter, opts.MatchApproxSameFirstLetter)
	assert.Equal(t, defaults.UpdateGroupKey, opts.UpdateGroupKey)
	assert.True(t, opts.MatchApproxSameFirstLetter)
	assert.True(t, opts.UpdateGroupKey)
}

func TestToVCardOptionsNoFlagsDisableCoreDefaults(t *testing.T) {
	cli := cliOptions{NoMatchApproxSameFirstLetter: true, NoUpdateGroupKey: true}
	opts := cli.toVCardOptions()

	assert.False(t, opts.MatchApproxSameFirstLetter)
	assert.False(t, opts.UpdateGroupKey)
}
