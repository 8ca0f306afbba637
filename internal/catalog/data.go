package catalog

import "glampd/pkg/types"

// Default datasets shipped with the binary. Dataset files loaded from the
// datasets directory replace these per segment.

func defaultDatasets() map[types.Segment][]types.ListingRecord {
	return map[types.Segment][]types.ListingRecord{
		{Brand: types.BrandGlamp, Market: types.MarketCanada}:  glampCanada(),
		{Brand: types.BrandGlamp, Market: types.MarketPakistan}: glampPakistan(),
		{Brand: types.BrandLodge, Market: types.MarketCanada}:  lodgeCanada(),
		{Brand: types.BrandLodge, Market: types.MarketPakistan}: lodgePakistan(),
	}
}

func glampCanada() []types.ListingRecord {
	return []types.ListingRecord{
		{
			ID: 1, Title: "Luxury Geodesic Dome", Location: "Banff, AB",
			Type: "Mountain View", Price: "CAD $250", Period: "per night",
			Rating: 4.9, Reviews: 89,
			Description: "Experience luxury camping with stunning mountain views and premium amenities.",
			Image:       "https://images.unsplash.com/photo-1533601017-dc61895e03c0?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Images: []string{
				"https://images.unsplash.com/photo-1533601017-dc61895e03c0?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
				"https://images.unsplash.com/photo-1506905925346-21bda4d32df4?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
				"https://images.unsplash.com/photo-1521401830884-6c03c1c87ebb?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			},
			Features:            []string{"Mountain View", "Fireplace", "Hot Tub", "Hiking Trails"},
			Badges:              []string{"Luxury", "Mountain View"},
			ExternalBookingLink: "https://www.airbnb.ca/rooms/glamp-banff-dome",
		},
		{
			ID: 2, Title: "Coastal Glamping Dome", Location: "Tofino, BC",
			Type: "Ocean View", Price: "CAD $180", Period: "per night",
			Rating: 4.7, Reviews: 156,
			Description: "Unique geodesic dome experience with ocean views and modern comfort.",
			Image:       "https://images.unsplash.com/photo-1537225228614-56cc3556d7ed?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Images: []string{
				"https://images.unsplash.com/photo-1537225228614-56cc3556d7ed?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
				"https://images.unsplash.com/photo-1533601017-dc61895e03c0?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			},
			Features:            []string{"Ocean View", "Private Deck", "Telescope", "Beach Access"},
			Badges:              []string{"Unique", "Ocean View"},
			ExternalBookingLink: "https://www.airbnb.ca/rooms/glamp-tofino-dome",
		},
		{
			ID: 3, Title: "Forest Retreat Dome", Location: "Algonquin Park, ON",
			Type: "Forest View", Price: "CAD $195", Period: "per night",
			Rating: 4.8, Reviews: 112,
			Description: "Secluded forest dome with panoramic views of the Canadian wilderness.",
			Image:       "https://images.unsplash.com/photo-1516939884455-1445c8652f83?ixlib=rb-4.0.3&auto=format&fit=crop&w=2074&q=80",
			Features:    []string{"Forest View", "Wildlife Watching", "Star Gazing", "Nature Trails"},
			Badges:      []string{"Secluded", "Forest"},
		},
	}
}

func glampPakistan() []types.ListingRecord {
	return []types.ListingRecord{
		{
			ID: 1, Title: "Mountain Glamping Pod", Location: "Murree Hills, Punjab",
			Type: "Mountain View", Price: "PKR 15,000", Period: "per night",
			Rating: 4.9, Reviews: 42,
			Description: "Modern glamping pods with all amenities while surrounded by nature.",
			Image:       "https://images.unsplash.com/photo-1521401830884-6c03c1c87ebb?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:    []string{"Modern Amenities", "Forest View", "Heated", "Private Bathroom"},
			Badges:      []string{"New", "Luxury Camping"},
		},
		{
			ID: 2, Title: "Riverside Luxury Tent", Location: "Hunza Valley",
			Type: "River View", Price: "PKR 18,000", Period: "per night",
			Rating: 4.8, Reviews: 35,
			Description: "Premium canvas tents with stunning views of the river and mountains.",
			Image:       "https://images.unsplash.com/photo-1595274459742-4a41d35784be?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:    []string{"River View", "Mountain View", "Luxury Bedding", "Outdoor Dining"},
			Badges:      []string{"Scenic", "Premium"},
		},
		{
			ID: 3, Title: "Desert Glamping Experience", Location: "Thar Desert, Sindh",
			Type: "Desert View", Price: "PKR 12,000", Period: "per night",
			Rating: 4.6, Reviews: 28,
			Description: "Unique desert camping with traditional hospitality and modern comfort.",
			Image:       "https://images.unsplash.com/photo-1584464491033-06628f3a6b7b?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:    []string{"Desert View", "Cultural Experience", "Camel Rides", "Traditional Meals"},
			Badges:      []string{"Cultural", "Adventure"},
		},
	}
}

func lodgeCanada() []types.ListingRecord {
	return []types.ListingRecord{
		{
			ID: 1, Title: "Modern Downtown Apartment", Location: "Mississauga, ON",
			Type: "City Rental", Price: "CAD $120", Period: "per night",
			Rating: 4.8, Reviews: 127,
			Description: "Stylish apartment in the heart of Mississauga with city views and modern amenities.",
			Image:       "https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:            []string{"Free WiFi", "Kitchen", "Parking", "City View"},
			Badges:              []string{"Popular", "Instant Book"},
			ExternalBookingLink: "https://www.airbnb.ca/rooms/lodge-mississauga-apt",
		},
		{
			ID: 2, Title: "Luxury Mountain Lodge", Location: "Banff, AB",
			Type: "Resort Camping", Price: "CAD $250", Period: "per night",
			Rating: 4.9, Reviews: 89,
			Description: "Experience luxury camping with stunning mountain views and premium amenities.",
			Image:       "https://images.unsplash.com/photo-1533601017-dc61895e03c0?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:    []string{"Mountain View", "Fireplace", "Hot Tub", "Hiking Trails"},
			Badges:      []string{"Luxury", "Mountain View"},
		},
		{
			ID: 3, Title: "Coastal Glamping Dome", Location: "Tofino, BC",
			Type: "Glamping", Price: "CAD $180", Period: "per night",
			Rating: 4.7, Reviews: 156,
			Description: "Unique geodesic dome experience with ocean views and modern comfort.",
			Image:       "https://images.unsplash.com/photo-1537225228614-56cc3556d7ed?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:    []string{"Ocean View", "Private Deck", "Telescope", "Beach Access"},
			Badges:      []string{"Unique", "Ocean View"},
		},
	}
}

func lodgePakistan() []types.ListingRecord {
	return []types.ListingRecord{
		{
			ID: 1, Title: "Heritage Haveli Suite", Location: "Lahore, Punjab",
			Type: "City Rental", Price: "PKR 8,500", Period: "per night",
			Rating: 4.6, Reviews: 98,
			Description: "Traditional Pakistani architecture meets modern comfort in the cultural heart of Lahore.",
			Image:       "https://images.unsplash.com/photo-1578662996442-48f60103fc96?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:    []string{"Traditional Decor", "Rooftop Terrace", "AC", "WiFi"},
			Badges:      []string{"Heritage", "Cultural"},
		},
		{
			ID: 2, Title: "Mountain Resort Cottage", Location: "Murree, Punjab",
			Type: "Resort Camping", Price: "PKR 12,000", Period: "per night",
			Rating: 4.8, Reviews: 74,
			Description: "Cozy mountain retreat with panoramic valley views and crisp mountain air.",
			Image:       "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:    []string{"Valley View", "Fireplace", "Garden", "Pine Forest"},
			Badges:      []string{"Mountain Escape", "Family Friendly"},
		},
		{
			ID: 3, Title: "Luxury Camping Pod", Location: "Murree Hills, Punjab",
			Type: "Glamping", Price: "PKR 15,000", Period: "per night",
			Rating: 4.9, Reviews: 42,
			Description: "Modern glamping pods with all amenities while surrounded by nature.",
			Image:       "https://images.unsplash.com/photo-1521401830884-6c03c1c87ebb?ixlib=rb-4.0.3&auto=format&fit=crop&w=2000&q=80",
			Features:    []string{"Modern Amenities", "Forest View", "Heated", "Private Bathroom"},
			Badges:      []string{"New", "Luxury Camping"},
		},
	}
}
