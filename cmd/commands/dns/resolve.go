package dns

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/QsSama-W/aliddns/internal/dns/domain"
	"github.com/QsSama-W/aliddns/internal/dns/services"
)

// resolveRecord maps a (domain, rr) pair to a single managed record.
// When both an A and an AAAA record exist for the name, --type must
// disambiguate.
func resolveRecord(ctx context.Context, svc *services.Service, domainName, rr, typeFilter string) (*domain.Record, error) {
	records, err := svc.ListRecords(ctx, domainName)
	if err != nil {
		return nil, err
	}

	var matches []domain.Record
	for _, r := range records {
		if !strings.EqualFold(r.RR, rr) {
			continue
		}
		if typeFilter != "" && !strings.EqualFold(string(r.Type), typeFilter) {
			continue
		}
		matches = append(matches, r)
	}

	switch len(matches) {
	case 0:
		if typeFilter != "" {
			return nil, fmt.Errorf("no %s record named %q on %s", strings.ToUpper(typeFilter), rr, domainName)
		}
		return nil, fmt.Errorf("no record named %q on %s", rr, domainName)
	case 1:
		return &matches[0], nil
	default:
		types := make([]string, len(matches))
		for i, m := range matches {
			types[i] = string(m.Type)
		}
		return nil, fmt.Errorf("%q on %s has multiple records (%s); pass --type to pick one",
			rr, domainName, strings.Join(types, ", "))
	}
}

// addTypeFlag registers the shared --type disambiguation flag.
func addTypeFlag(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "Record type to target when both A and AAAA exist")
}
