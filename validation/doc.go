// Package validation checks vidscribe configuration and pipeline requests
// against their validate struct tags, using go-playground/validator.
//
// Failing fields are reported by their mapstructure or json key and the
// result is an INVALID_INPUT AppError:
//
//	type Options struct {
//	    Video string `mapstructure:"video_path" validate:"required,notdir"`
//	}
//	err := validation.Validate(opts)
//
// Besides the validator's built-in tags, "notdir" rejects a path naming an
// existing directory. Other packages add domain tags with RegisterRule; the
// media package registers "audioformat".
package validation
