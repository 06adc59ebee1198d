package catalog

// DefaultTeams is the ten-franchise league every auction starts with.
var DefaultTeams = []Team{
	{ID: 1, Name: "Chennai Super Kings"},
	{ID: 2, Name: "Rajasthan Royals"},
	{ID: 3, Name: "Kolkata Knight Riders"},
	{ID: 4, Name: "Sunrisers Hyderabad"},
	{ID: 5, Name: "Royal Challengers Bangalore"},
	{ID: 6, Name: "Delhi Capitals"},
	{ID: 7, Name: "Punjab Kings"},
	{ID: 8, Name: "Mumbai Indians"},
	{ID: 9, Name: "Gujarat Titans"},
	{ID: 10, Name: "Lucknow Super Giants"},
}
