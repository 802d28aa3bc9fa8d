package plan

// interestPool bundles template content for one interest keyword.
// Pools are destination-agnostic: names read naturally for any city.
type interestPool struct {
	attractions []Attraction
	restaurants []Restaurant
	transport   string
}

// fallbackInterest is used when a requested interest has no dedicated pool
// or when the interests list is empty.
const fallbackInterest = "highlights"

// interestPools maps a lowercased interest keyword to its content pool.
// Read-only after package init; safe for unsynchronized concurrent reads.
var interestPools = map[string]interestPool{
	"highlights": {
		attractions: []Attraction{
			{Name: "Old Town Walking Tour", Type: "sight", Neighborhood: "Historic Center", Notes: "Iconic highlights walk."},
			{Name: "Central Market", Type: "market", Neighborhood: "Downtown", Notes: "Local produce and crafts."},
			{Name: "River Promenade", Type: "scenic", Neighborhood: "Waterfront", Notes: "Sunset views."},
		},
		restaurants: []Restaurant{
			{Name: "Local Bistro", Cuisine: "Regional", Notes: "Classic regional dishes."},
			{Name: "Street Food Corner", Cuisine: "Casual", Notes: "Quick bites between sights."},
			{Name: "Sunset Terrace", Cuisine: "Grill", Notes: "Great for dinner with views."},
		},
		transport: "Walk the compact center; use metro/bus for longer hops.",
	},
	"art": {
		attractions: []Attraction{
			{Name: "Modern Art Museum", Type: "museum", Neighborhood: "Arts District", Notes: "Contemporary collection."},
			{Name: "Gallery Lane", Type: "gallery", Neighborhood: "Old Town", Notes: "Independent galleries."},
			{Name: "Public Murals Route", Type: "street art", Neighborhood: "Warehouse Quarter", Notes: "Open-air murals."},
		},
		restaurants: []Restaurant{
			{Name: "Palette Cafe", Cuisine: "Cafe", Notes: "Near the museum cluster."},
			{Name: "Atelier Wine Bar", Cuisine: "Wine & Small Plates", Notes: "Art crowd favorite."},
		},
		transport: "Tram connects museums; bike lanes are great between galleries.",
	},
	"nature": {
		attractions: []Attraction{
			{Name: "City Park Loop", Type: "park", Neighborhood: "Green Belt", Notes: "Shaded loop trail."},
			{Name: "Scenic Overlook", Type: "viewpoint", Neighborhood: "Hills", Notes: "Panoramic city views."},
			{Name: "Botanical Garden", Type: "garden", Neighborhood: "University", Notes: "Native plants section."},
		},
		restaurants: []Restaurant{
			{Name: "Garden Picnic", Cuisine: "Deli-to-go", Notes: "Pick up for picnic."},
			{Name: "Lakeside Shack", Cuisine: "Seafood", Notes: "Casual lunch with views."},
		},
		transport: "Bus to trailheads; rideshare back if returning late.",
	},
	"food": {
		attractions: []Attraction{
			{Name: "Farmers' Market", Type: "market", Neighborhood: "Downtown", Notes: "Morning tastings."},
			{Name: "Cooking Class", Type: "experience", Neighborhood: "Center", Notes: "Hands-on class."},
			{Name: "Chocolate Workshop", Type: "experience", Neighborhood: "Riverside", Notes: "Bean-to-bar demo."},
		},
		restaurants: []Restaurant{
			{Name: "Chef's Table", Cuisine: "Contemporary", Notes: "Seasonal tasting menu."},
			{Name: "Hidden Noodle Bar", Cuisine: "Asian", Notes: "Late-night comfort food."},
		},
		transport: "Compact food crawl by foot; metro for outer neighborhoods.",
	},
	"history": {
		attractions: []Attraction{
			{Name: "Ancient Citadel", Type: "fortress", Neighborhood: "Old City", Notes: "Foundations and ramparts."},
			{Name: "Archaeology Museum", Type: "museum", Neighborhood: "Center", Notes: "Local antiquities."},
			{Name: "Heritage Quarter", Type: "district", Neighborhood: "Old City", Notes: "Medieval lanes."},
		},
		restaurants: []Restaurant{
			{Name: "Tavern 1200", Cuisine: "Traditional", Notes: "Hearty classics."},
			{Name: "Heritage House", Cuisine: "Local", Notes: "Historic interior."},
		},
		transport: "Most sites are walkable; use tram to reach the citadel.",
	},
	"nightlife": {
		attractions: []Attraction{
			{Name: "Rooftop Bar Crawl", Type: "nightlife", Neighborhood: "Downtown", Notes: "Best views."},
			{Name: "Live Music Venue", Type: "music", Neighborhood: "Arts District", Notes: "Local bands."},
		},
		restaurants: []Restaurant{
			{Name: "Late Bite", Cuisine: "Burgers", Notes: "Open late."},
			{Name: "Tapas Alley", Cuisine: "Spanish", Notes: "Good for groups."},
		},
		transport: "Use metro until midnight; rideshare after hours.",
	},
	"shopping": {
		attractions: []Attraction{
			{Name: "Design District", Type: "shopping", Neighborhood: "West End", Notes: "Concept stores."},
			{Name: "Vintage Market", Type: "market", Neighborhood: "Old Town", Notes: "Thrift gems."},
		},
		restaurants: []Restaurant{
			{Name: "Food Court Hall", Cuisine: "Mixed", Notes: "Many options."},
			{Name: "Bakery Lane", Cuisine: "Bakery", Notes: "Coffee break."},
		},
		transport: "Tram stops near all main malls; easy to carry bags.",
	},
	"kids": {
		attractions: []Attraction{
			{Name: "Science Center", Type: "museum", Neighborhood: "University", Notes: "Hands-on exhibits."},
			{Name: "City Zoo", Type: "zoo", Neighborhood: "Park", Notes: "Feeding hours."},
		},
		restaurants: []Restaurant{
			{Name: "Family Diner", Cuisine: "American", Notes: "Kids menu."},
			{Name: "Pasta Corner", Cuisine: "Italian", Notes: "High-chairs available."},
		},
		transport: "Bus lines have stroller space; plan nap breaks near parks.",
	},
	"adventure": {
		attractions: []Attraction{
			{Name: "Kayak on the River", Type: "activity", Neighborhood: "Waterfront", Notes: "Guided session."},
			{Name: "Cliff Trail", Type: "hike", Neighborhood: "Hills", Notes: "Watch footing."},
		},
		restaurants: []Restaurant{
			{Name: "Trailhead Cafe", Cuisine: "Sandwiches", Notes: "Packable lunch."},
			{Name: "Grill House", Cuisine: "BBQ", Notes: "Protein-heavy dinner."},
		},
		transport: "Shuttle to trailheads; check weather before departure.",
	},
	"beach": {
		attractions: []Attraction{
			{Name: "City Beach", Type: "beach", Neighborhood: "Coast", Notes: "Lifeguard hours."},
			{Name: "Lighthouse Walk", Type: "scenic", Neighborhood: "Coast", Notes: "Golden hour photos."},
		},
		restaurants: []Restaurant{
			{Name: "Sea Breeze", Cuisine: "Seafood", Notes: "Fresh catch."},
			{Name: "Beach Shack", Cuisine: "Casual", Notes: "Snacks and drinks."},
		},
		transport: "Tram to the coast; sunscreen and water recommended.",
	},
	"architecture": {
		attractions: []Attraction{
			{Name: "Cathedral & Square", Type: "landmark", Neighborhood: "Old Town", Notes: "Gothic details."},
			{Name: "Modern Skyline Walk", Type: "architecture", Neighborhood: "Financial District", Notes: "Iconic towers."},
		},
		restaurants: []Restaurant{
			{Name: "Atrium Cafe", Cuisine: "Cafe", Notes: "Light lunch."},
			{Name: "Skyline Sushi", Cuisine: "Japanese", Notes: "Views from bar."},
		},
		transport: "Mix of walking and metro between neighborhoods.",
	},
}
