package services

import (
	"airbnb-analytics/models"
	"airbnb-analytics/utils"
)

// ExtractHosts returns one Host per host id, keeping the first listing row seen
// for each host. Rows without a positive host id are skipped.
func ExtractHosts(listings []models.ListingRecord) []models.Host {
	seen := utils.NewKeyTracker[int64]()
	hosts := make([]models.Host, 0)
	for _, l := range listings {
		id, ok := l.HostID.Get()
		if !ok || id <= 0 || !seen.Add(id) {
			continue
		}
		hosts = append(hosts, models.Host{
			ID:            id,
			Name:          l.HostName.OrElse(""),
			Since:         l.HostSince.OrElse(""),
			IsSuperhost:   l.HostIsSuperhost.OrElse("") == "t",
			ListingsCount: l.HostListingsCount,
		})
	}
	return hosts
}
