package dockerfile

import (
	"fmt"
	"time"
)

// headerTimeLayout is the timestamp format embedded in the generated header.
const headerTimeLayout = "2006-01-02 15:04:05"

const headerTemplate = `# Dockerfile migrated to Docker Hardened Images (DHI)
# Generated by DHI Migration Tool on %s
#
# Migration Notes:
# - Updated to use minimal, security-focused DHI base images
# - Configured to run as non-root user for enhanced security
# - Ports adjusted to avoid privilege requirements where needed
# - Multi-stage build implemented to reduce attack surface
#
# For more information about DHI, see:
# https://www.docker.com/products/hardened-images/
`

// header produces the fixed comment block prepended to every migrated
// Dockerfile. Callers expecting audit trails rely on its content and
// ordering, so keep the bullet list stable.
func header(now time.Time) string {
	return fmt.Sprintf(headerTemplate, now.Format(headerTimeLayout))
}
