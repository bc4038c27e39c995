package objectdb

import (
	"bytes"
	"strings"

	"github.com/wachdienst/dienstplan/business/domain/objectbus"
)

func applyFilter(filter objectbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["object_id"] = *filter.ID
		wc = append(wc, "object_id = :object_id")
	}

	if filter.TenantID != nil {
		data["tenant_id"] = *filter.TenantID
		wc = append(wc, "tenant_id = :tenant_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + filter.Name.String() + "%"
		wc = append(wc, "name LIKE :name")
	}

	if filter.AssignedLeadID != nil {
		data["assigned_lead_id"] = *filter.AssignedLeadID
		wc = append(wc, "assigned_lead_id = :assigned_lead_id")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
