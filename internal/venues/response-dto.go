package venues

import "venuebook/internal/shared/utils/response"

// VenueList is the paginated venue listing payload
type VenueList = response.Page[Venue]
