package cmd

import (
	"fmt"
	"regexp"
	"strings"

	oerrors "github.com/bundlegen/cli/internal/errors"
	"github.com/bundlegen/cli/internal/naming"
	"github.com/bundlegen/cli/internal/scaffold"
)

var namespacePattern = regexp.MustCompile(`^(?:[A-Za-z_][A-Za-z0-9_]*\\?)+$`)

// validateBundleNamespace normalises "/" separators to "\" and checks that
// the namespace has a vendor segment and ends in "Bundle".
func validateBundleNamespace(namespace string) (string, error) {
	if !strings.HasSuffix(namespace, scaffold.ModuleSuffix) {
		return "", oerrors.NewValidationError("The namespace must end with Bundle.", "namespace", "")
	}

	namespace = naming.BackslashPath(namespace)
	if !namespacePattern.MatchString(namespace) {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("The namespace %q contains invalid characters.", namespace),
			"namespace",
			"",
		)
	}

	if !strings.Contains(namespace, `\`) {
		return "", oerrors.NewValidationError(
			"The namespace must contain a vendor namespace.",
			"namespace",
			fmt.Sprintf(`Use "VendorName\%s" instead of simply "%s".`, namespace, namespace),
		)
	}

	return namespace, nil
}

// defaultBundleName derives the bundle name from its namespace, e.g.
// `Acme\Bundle\BlogBundle` gives "AcmeBlogBundle".
func defaultBundleName(namespace string) string {
	return strings.NewReplacer(`\Bundle\`, "", `\`, "").Replace(namespace)
}

// validateBundleName checks that name ends in "Bundle".
func validateBundleName(name string) (string, error) {
	if !strings.HasSuffix(name, scaffold.ModuleSuffix) || name == scaffold.ModuleSuffix {
		return "", oerrors.NewValidationError("The bundle name must end with Bundle.", "bundle-name", "")
	}
	return name, nil
}

// parseEntityShortcut splits "AcmeBlogBundle:Blog/Post" into bundle and entity.
func parseEntityShortcut(shortcut string) (bundle, entity string, err error) {
	bundle, entity, ok := strings.Cut(shortcut, ":")
	if !ok || bundle == "" || entity == "" {
		return "", "", oerrors.NewValidationError(
			fmt.Sprintf("The entity name must contain a : (%q given).", shortcut),
			"entity",
			"Expecting something like AcmeBlogBundle:Blog/Post",
		)
	}
	if _, err := validateBundleName(bundle); err != nil {
		return "", "", err
	}
	return bundle, entity, nil
}

// validateFormat lower-cases format and rejects unknown values.
func validateFormat(format string) (scaffold.ConfigFormat, error) {
	if !scaffold.IsValidFormat(format) {
		return "", oerrors.NewValidationError(
			fmt.Sprintf("Format %q is not supported.", format),
			"format",
			fmt.Sprintf("Valid formats: %s", strings.Join(scaffold.ValidFormats(), ", ")),
		)
	}
	return scaffold.ParseFormat(format), nil
}

// defaultRoutePrefix returns the route prefix used when none is configured,
// e.g. "/blog_post" for `Blog\Post`.
func defaultRoutePrefix(entity string) string {
	return "/" + strings.ToLower(strings.Join(naming.SplitPath(entity), "_"))
}

// normalizeRoutePrefix returns prefix with exactly one leading slash and no
// trailing slash.
func normalizeRoutePrefix(prefix string) string {
	return "/" + strings.Trim(prefix, "/")
}
