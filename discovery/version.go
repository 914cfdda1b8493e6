// Copyright 2024 The allocator Authors. All rights reserved.

package discovery

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// checkFormatVersion parses a "major[.minor[.micro]]" version string and
// verifies it against FormatVersionMajor/FormatVersionMinor with a
// major-must-match, minor-must-not-exceed rule: config files written for
// the same or an older minor revision are accepted, and files naming a
// newer minor revision are rejected.
func checkFormatVersion(version string) error {
	if version == "" {
		return errors.Wrap(ErrFormatVersion, "empty format_version")
	}

	parts := strings.SplitN(version, ".", 3)
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return errors.Wrapf(ErrFormatVersion, "malformed major version %q", parts[0])
	}

	minor := 0
	if len(parts) >= 2 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return errors.Wrapf(ErrFormatVersion, "malformed minor version %q", parts[1])
		}
	}

	if major != FormatVersionMajor {
		return errors.Wrapf(ErrFormatVersion, "major version %d, want %d", major, FormatVersionMajor)
	}
	if minor > FormatVersionMinor {
		return errors.Wrapf(ErrFormatVersion, "minor version %d exceeds supported %d", minor, FormatVersionMinor)
	}

	return nil
}
