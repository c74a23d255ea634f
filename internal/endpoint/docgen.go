package endpoint

import (
	"fmt"
	"strings"
	"time"

	"github.com/mrz1836/calcifer/internal/constants"
	"github.com/mrz1836/calcifer/internal/domain"
)

// DocFileName returns the documentation file name for an endpoint,
// e.g. "endpoint-edge proxy" becomes "endpoint-edge-proxy.md".
func DocFileName(name string) string {
	return fmt.Sprintf("endpoint-%s.md", strings.ReplaceAll(strings.ToLower(name), " ", "-"))
}

// checkMethod describes how a probe type verifies availability.
func checkMethod(epType domain.EndpointType, port *int) string {
	switch epType {
	case domain.EndpointNetwork:
		return "Ping (ICMP)"
	case domain.EndpointTCP:
		if port != nil {
			return fmt.Sprintf("TCP Port %d", *port)
		}
		return "TCP"
	case domain.EndpointHTTP:
		if port != nil {
			return fmt.Sprintf("HTTP GET on port %d", *port)
		}
		return "HTTP GET"
	case domain.EndpointHTTPS:
		if port != nil {
			return fmt.Sprintf("HTTPS GET on port %d", *port)
		}
		return "HTTPS GET"
	default:
		return "Unknown"
	}
}

// GenerateDoc renders the markdown runbook for a monitored endpoint:
// overview, monitoring configuration, access details, and troubleshooting
// steps for when the endpoint goes down.
func GenerateDoc(name string, epType domain.EndpointType, target string, port *int, description string, now time.Time) string {
	var b strings.Builder

	overview := description
	if overview == "" {
		overview = fmt.Sprintf("Endpoint monitoring for %s.", name)
	}

	fmt.Fprintf(&b, "# Endpoint: %s\n\n", name)
	b.WriteString("## Overview\n\n")
	fmt.Fprintf(&b, "**Type:** %s  \n", strings.ToUpper(string(epType)))
	fmt.Fprintf(&b, "**Target:** `%s`  \n", target)
	b.WriteString("**Status:** Monitored by Calcifer\n\n")
	fmt.Fprintf(&b, "%s\n\n", overview)

	b.WriteString("## Monitoring Configuration\n\n")
	b.WriteString("This endpoint is monitored for availability.\n\n")
	fmt.Fprintf(&b, "**Check Type:** %s  \n", epType)
	fmt.Fprintf(&b, "**Check Method:** %s\n\n", checkMethod(epType, port))

	b.WriteString("## Access Information\n\n")
	fmt.Fprintf(&b, "**Target:** `%s`", target)
	if port != nil {
		fmt.Fprintf(&b, "  \n**Port:** `%d`", *port)
	}
	b.WriteString("\n\n")

	portPart := ""
	if port != nil {
		portPart = fmt.Sprintf(" %d", *port)
	}
	b.WriteString("## Troubleshooting\n\n")
	b.WriteString("### Endpoint is Down\n\n")
	b.WriteString("1. **Check network connectivity:**\n")
	fmt.Fprintf(&b, "```bash\n   ping %s\n```\n\n", target)
	b.WriteString("2. **Check specific port (if applicable):**\n")
	fmt.Fprintf(&b, "```bash\n   nc -zv %s%s\n```\n\n", target, portPart)
	b.WriteString("3. **Check firewall rules:**\n")
	b.WriteString("   - Verify firewall allows traffic from monitoring server\n")
	b.WriteString("   - Check iptables/firewalld rules\n\n")
	b.WriteString("4. **Verify service is running:**\n")
	b.WriteString("   - Check if the target service/device is online\n")
	b.WriteString("   - Review service logs\n\n")

	b.WriteString("## History\n\n")
	fmt.Fprintf(&b, "- **Created:** %s\n", now.Format(constants.ChangelogDateFormat))
	fmt.Fprintf(&b, "- **Purpose:** Monitor availability of %s\n\n", name)

	b.WriteString("## Related\n\n")
	b.WriteString("- Endpoint configuration in Calcifer\n")
	b.WriteString("- Service catalog entry\n")

	return b.String()
}
