package cloudzcrypt

import (
	"crypto/subtle"
	"fmt"
)

// MinPasswordLength is the advisory floor for password length. Shorter
// passwords are flagged, not rejected.
const MinPasswordLength = 8

// Validate runs the pre-flight checks that decide whether the operation can
// even be attempted. It returns plain advisory strings and never fails;
// cryptographic work only starts when the list is empty.
func (o *Orchestrator) Validate(req *Request) []string {
	var problems []string

	if req == nil {
		return []string{"no request provided"}
	}
	if req.SourcePath == "" {
		problems = append(problems, "source path is empty")
	}
	if req.DestinationPath == "" {
		problems = append(problems, "destination path is empty")
	}
	if req.SourcePath != "" && req.SourcePath == req.DestinationPath {
		problems = append(problems, "source and destination are the same path")
	}
	if len(req.Password) == 0 {
		problems = append(problems, "password is empty")
	}
	if !req.Algorithm.Valid() {
		problems = append(problems, "unsupported encryption algorithm")
	}
	if !req.KDF.Valid() {
		problems = append(problems, "unsupported key derivation algorithm")
	}

	if req.SourcePath != "" {
		if _, err := o.fs.Stat(req.SourcePath); err != nil {
			problems = append(problems, fmt.Sprintf("source path does not exist: %s", req.SourcePath))
		}
	}

	return problems
}

// AnalyzeWarnings collects non-blocking advisories: conditions the caller
// should surface before proceeding, but which do not prevent the attempt.
func (o *Orchestrator) AnalyzeWarnings(req *Request) []string {
	var warnings []string
	if req == nil {
		return nil
	}

	if len(req.Password) > 0 && len(req.Password) < MinPasswordLength {
		warnings = append(warnings, fmt.Sprintf("password is shorter than %d characters", MinPasswordLength))
	}

	if info, err := o.fs.Stat(req.DestinationPath); err == nil && info.IsDir() {
		if f, err := o.fs.Open(req.DestinationPath); err == nil {
			names, _ := f.Readdirnames(1)
			f.Close()
			if len(names) > 0 {
				warnings = append(warnings, "destination directory is not empty, existing files may be overwritten")
			}
		}
	}

	if req.Operation == OpEncrypt && o.space != nil {
		if info, err := o.fs.Stat(req.SourcePath); err == nil {
			var total int64
			if info.IsDir() {
				if entries, err := walkFiles(o.fs, req.SourcePath); err == nil {
					for _, e := range entries {
						total += e.size
					}
				}
			} else {
				total = info.Size()
			}
			if free, ok := o.space.FreeSpace(req.DestinationPath); ok && free < requiredSpace(total) {
				warnings = append(warnings, "destination drive may not have enough free space")
			}
		}
	}

	if req.Operation == OpDecrypt {
		if info, err := o.fs.Stat(req.SourcePath); err == nil && info.IsDir() {
			sep := string(o.fs.Separator())
			if _, err := o.fs.Stat(joinPath(sep, req.SourcePath, ManifestFileName)); err != nil {
				warnings = append(warnings, "no manifest found, original names will be recovered by stripping the "+FileExtension+" suffix")
			}
		}
	}

	return warnings
}

// PasswordsMatch reports whether a password and its confirmation are equal,
// in constant time. Helper for interactive callers.
func PasswordsMatch(password, confirmation []byte) bool {
	return subtle.ConstantTimeCompare(password, confirmation) == 1
}
