package comps

// dataset is the bundled comparable-sales table. Append rows; never edit prices of
// existing rows without bumping catalog.Version.
var dataset = []Sale{
	// Ultra-premium and one-word .com
	{Domain: "voice.com", Price: 30_000_000, Year: 2019, Venue: "private"},
	{Domain: "insurance.com", Price: 35_600_000, Year: 2010, Venue: "private"},
	{Domain: "vacationrentals.com", Price: 35_000_000, Year: 2007, Venue: "private"},
	{Domain: "privatejet.com", Price: 30_180_000, Year: 2012, Venue: "private"},
	{Domain: "internet.com", Price: 18_000_000, Year: 2009, Venue: "private"},
	{Domain: "360.com", Price: 17_000_000, Year: 2015, Venue: "private"},
	{Domain: "insure.com", Price: 16_000_000, Year: 2009, Venue: "private"},
	{Domain: "nfts.com", Price: 15_000_000, Year: 2022, Venue: "private"},
	{Domain: "chat.com", Price: 15_500_000, Year: 2023, Venue: "private"},
	{Domain: "crypto.com", Price: 12_000_000, Year: 2018, Venue: "private"},
	{Domain: "hotels.com", Price: 11_000_000, Year: 2001, Venue: "private"},
	{Domain: "fund.com", Price: 9_999_950, Year: 2008, Venue: "private"},
	{Domain: "shoes.com", Price: 9_000_000, Year: 2017, Venue: "private"},
	{Domain: "we.com", Price: 8_000_000, Year: 2015, Venue: "private"},
	{Domain: "business.com", Price: 7_500_000, Year: 1999, Venue: "private"},
	{Domain: "beer.com", Price: 7_000_000, Year: 2004, Venue: "private"},
	{Domain: "clothes.com", Price: 4_900_000, Year: 2008, Venue: "private"},
	{Domain: "ice.com", Price: 3_500_000, Year: 2019, Venue: "private"},
	{Domain: "mi.com", Price: 3_600_000, Year: 2014, Venue: "private"},
	{Domain: "whisky.com", Price: 3_100_000, Year: 2014, Venue: "private"},
	{Domain: "gold.com", Price: 2_000_000, Year: 2011, Venue: "private"},
	{Domain: "diamond.com", Price: 7_500_000, Year: 2006, Venue: "private"},
	{Domain: "toys.com", Price: 5_100_000, Year: 2009, Venue: "auction"},
	{Domain: "data.com", Price: 1_000_000, Year: 2012, Venue: "private"},

	// Short patterns
	{Domain: "hb.com", Price: 850_000, Year: 2021, Venue: "afternic"},
	{Domain: "ky.com", Price: 600_000, Year: 2020, Venue: "private"},
	{Domain: "zq.com", Price: 310_000, Year: 2019, Venue: "namejet"},
	{Domain: "fxc.com", Price: 95_000, Year: 2021, Venue: "sedo"},
	{Domain: "lqv.com", Price: 38_000, Year: 2022, Venue: "namejet"},
	{Domain: "zvb.com", Price: 29_500, Year: 2023, Venue: "dropcatch"},
	{Domain: "m3x.com", Price: 9_800, Year: 2022, Venue: "sedo"},
	{Domain: "888.com", Price: 250_000, Year: 2012, Venue: "private"},
	{Domain: "ai.io", Price: 120_000, Year: 2021, Venue: "private"},
	{Domain: "xr.net", Price: 42_000, Year: 2022, Venue: "sedo"},
	{Domain: "qpt.net", Price: 3_200, Year: 2023, Venue: "dropcatch"},
	{Domain: "kfx.org", Price: 2_100, Year: 2023, Venue: "dropcatch"},

	// Keyword and two-word .com
	{Domain: "carinsurance.com", Price: 49_700_000, Year: 2010, Venue: "private"},
	{Domain: "loans.com", Price: 3_000_000, Year: 2000, Venue: "private"},
	{Domain: "poker.org", Price: 1_000_000, Year: 2014, Venue: "private"},
	{Domain: "solarpanels.com", Price: 180_000, Year: 2020, Venue: "sedo"},
	{Domain: "cloudhosting.com", Price: 125_000, Year: 2019, Venue: "afternic"},
	{Domain: "cryptobank.com", Price: 240_000, Year: 2021, Venue: "private"},
	{Domain: "dentalcare.com", Price: 65_000, Year: 2018, Venue: "sedo"},
	{Domain: "travelshop.com", Price: 24_000, Year: 2019, Venue: "sedo"},
	{Domain: "homeloans.net", Price: 18_500, Year: 2020, Venue: "sedo"},
	{Domain: "bestvpn.com", Price: 1_100_000, Year: 2021, Venue: "private"},
	{Domain: "smartmoney.io", Price: 14_000, Year: 2022, Venue: "afternic"},
	{Domain: "datamarket.com", Price: 32_000, Year: 2021, Venue: "afternic"},
	{Domain: "jobsearch.org", Price: 9_500, Year: 2020, Venue: "sedo"},
	{Domain: "petstore.co", Price: 6_200, Year: 2021, Venue: "godaddy"},
	{Domain: "hotelrent.net", Price: 2_900, Year: 2022, Venue: "godaddy"},
	{Domain: "shopsecurity.com", Price: 7_400, Year: 2023, Venue: "afternic"},

	// Brandables and dictionary words
	{Domain: "brightpath.com", Price: 42_000, Year: 2020, Venue: "afternic"},
	{Domain: "stonebridge.com", Price: 55_000, Year: 2019, Venue: "sedo"},
	{Domain: "bluewave.io", Price: 8_500, Year: 2022, Venue: "afternic"},
	{Domain: "novaspark.com", Price: 12_500, Year: 2021, Venue: "brandbucket"},
	{Domain: "lumora.com", Price: 7_800, Year: 2022, Venue: "brandbucket"},
	{Domain: "zentrix.com", Price: 4_500, Year: 2021, Venue: "brandbucket"},
	{Domain: "quickcode.dev", Price: 1_900, Year: 2023, Venue: "godaddy"},
	{Domain: "greenleaf.org", Price: 3_400, Year: 2020, Venue: "sedo"},
	{Domain: "happypet.co", Price: 1_200, Year: 2021, Venue: "godaddy"},
	{Domain: "daily-news.net", Price: 650, Year: 2022, Venue: "godaddy"},
	{Domain: "orbitlabs.ai", Price: 22_000, Year: 2024, Venue: "afternic"},
	{Domain: "mindhub.app", Price: 2_400, Year: 2023, Venue: "godaddy"},
	{Domain: "pulsedata.io", Price: 5_100, Year: 2022, Venue: "sedo"},
	{Domain: "atlasworks.com", Price: 15_000, Year: 2021, Venue: "afternic"},
	{Domain: "freshfood24.com", Price: 900, Year: 2022, Venue: "godaddy"},
	{Domain: "my-best-shop-online.com", Price: 150, Year: 2023, Venue: "dropcatch"},
	{Domain: "cheapcarsdeals4u.net", Price: 95, Year: 2023, Venue: "dropcatch"},
}
