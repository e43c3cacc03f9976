package refdata

// Default returns the built-in company catalog: large NSE names with full
// profiles, a wider NSE set with descriptive fields only, and a handful of US
// large caps. Symbols carry their native exchange suffix where one exists.
func Default() *Catalog {
	return NewCatalog(defaultEntries)
}

var defaultEntries = []Descriptor{
	{
		Symbol: "RELIANCE.NS", Name: "Reliance Industries Limited",
		Sector: "Oil & Gas", Exchange: "NSE", Region: "India", Domain: "ril.com",
		Description: "India's largest private sector company with interests in petrochemicals, oil & gas, telecommunications, and retail",
		CEO:         "Mukesh Ambani", Founded: "1973", Website: "https://www.ril.com",
		MarketCap: "₹9,31,000 Cr", PERatio: 15.2, PBRatio: 1.8,
		ROE: 9.8, ROA: 4.2, DebtToEquity: 0.35, CurrentRatio: 1.4,
		PromoterHolding: 50.3, InstitutionalHolding: 23.1, PublicHolding: 26.6,
	},
	{
		Symbol: "TCS.NS", Name: "Tata Consultancy Services Limited",
		Sector: "IT Services", Exchange: "NSE", Region: "India", Domain: "tcs.com",
		Description: "Leading global IT services, consulting and business solutions organization",
		CEO:         "K Krithivasan", Founded: "1968", Website: "https://www.tcs.com",
		MarketCap: "₹11,45,000 Cr", PERatio: 28.5, PBRatio: 11.2,
		ROE: 42.1, ROA: 22.8, DebtToEquity: 0.05, CurrentRatio: 2.8,
		PromoterHolding: 72.2, InstitutionalHolding: 15.8, PublicHolding: 12.0,
	},
	{
		Symbol: "HDFCBANK.NS", Name: "HDFC Bank Limited",
		Sector: "Banking", Exchange: "NSE", Region: "India", Domain: "hdfcbank.com",
		Description: "India's largest private sector bank by assets and market capitalization",
		CEO:         "Sashidhar Jagdishan", Founded: "1994", Website: "https://www.hdfcbank.com",
		MarketCap: "₹7,42,000 Cr", PERatio: 18.7, PBRatio: 2.9,
		ROE: 17.2, ROA: 1.8, DebtToEquity: 6.2, CurrentRatio: 1.1,
		PromoterHolding: 0.0, InstitutionalHolding: 75.2, PublicHolding: 24.8,
	},
	{
		Symbol: "INFY.NS", Name: "Infosys Limited",
		Sector: "IT Services", Exchange: "NSE", Region: "India", Domain: "infosys.com",
		Description: "Global leader in next-generation digital services and consulting",
		CEO:         "Salil Parekh", Founded: "1981", Website: "https://www.infosys.com",
		MarketCap: "₹6,38,000 Cr", PERatio: 25.4, PBRatio: 7.8,
		ROE: 31.8, ROA: 19.2, DebtToEquity: 0.08, CurrentRatio: 2.4,
		PromoterHolding: 13.2, InstitutionalHolding: 38.5, PublicHolding: 48.3,
	},
	{
		Symbol: "ITC.NS", Name: "ITC Limited",
		Sector: "FMCG", Exchange: "NSE", Region: "India", Domain: "itcportal.com",
		Description: "Leading Indian conglomerate in FMCG, hotels, paperboards, packaging and agri-business",
		CEO:         "Sanjiv Puri", Founded: "1910", Website: "https://www.itcportal.com",
		MarketCap: "₹5,01,000 Cr", PERatio: 22.8, PBRatio: 5.2,
		ROE: 24.8, ROA: 12.4, DebtToEquity: 0.12, CurrentRatio: 2.8,
		PromoterHolding: 0.0, InstitutionalHolding: 65.4, PublicHolding: 34.6,
	},
	{
		Symbol: "HINDUNILVR.NS", Name: "Hindustan Unilever Limited",
		Sector: "FMCG", Exchange: "NSE", Region: "India", Domain: "hul.co.in",
		Description: "Leading FMCG company with strong portfolio of trusted brands",
		CEO:         "Rohit Jawa", Founded: "1933", Website: "https://www.hul.co.in",
		MarketCap: "₹6,28,000 Cr", PERatio: 58.9, PBRatio: 12.8,
		ROE: 82.4, ROA: 28.6, DebtToEquity: 0.02, CurrentRatio: 1.6,
		PromoterHolding: 67.2, InstitutionalHolding: 19.8, PublicHolding: 13.0,
	},

	// Descriptive-only NSE entries used by search fallback and logo backfill.
	{Symbol: "ICICIBANK.NS", Name: "ICICI Bank Limited", Sector: "Banking", Exchange: "NSE", Region: "India", Domain: "icicibank.com"},
	{Symbol: "SBIN.NS", Name: "State Bank of India", Sector: "Banking", Exchange: "NSE", Region: "India", Domain: "sbi.co.in"},
	{Symbol: "BHARTIARTL.NS", Name: "Bharti Airtel Limited", Sector: "Telecom", Exchange: "NSE", Region: "India", Domain: "airtel.in"},
	{Symbol: "KOTAKBANK.NS", Name: "Kotak Mahindra Bank Limited", Sector: "Banking", Exchange: "NSE", Region: "India", Domain: "kotak.com"},
	{Symbol: "LT.NS", Name: "Larsen & Toubro Limited", Sector: "Infrastructure", Exchange: "NSE", Region: "India", Domain: "larsentoubro.com"},
	{Symbol: "ASIANPAINT.NS", Name: "Asian Paints Limited", Sector: "Paints", Exchange: "NSE", Region: "India", Domain: "asianpaints.com"},
	{Symbol: "MARUTI.NS", Name: "Maruti Suzuki India Limited", Sector: "Automotive", Exchange: "NSE", Region: "India", Domain: "marutisuzuki.com"},
	{Symbol: "SUNPHARMA.NS", Name: "Sun Pharmaceutical Industries Limited", Sector: "Pharmaceuticals", Exchange: "NSE", Region: "India", Domain: "sunpharma.com"},
	{Symbol: "TITAN.NS", Name: "Titan Company Limited", Sector: "Jewelry", Exchange: "NSE", Region: "India", Domain: "titan.co.in"},
	{Symbol: "NESTLEIND.NS", Name: "Nestle India Limited", Sector: "FMCG", Exchange: "NSE", Region: "India", Domain: "nestle.in"},
	{Symbol: "WIPRO.NS", Name: "Wipro Limited", Sector: "IT Services", Exchange: "NSE", Region: "India", Domain: "wipro.com"},
	{Symbol: "ULTRACEMCO.NS", Name: "UltraTech Cement Limited", Sector: "Cement", Exchange: "NSE", Region: "India", Domain: "ultratechcement.com"},
	{Symbol: "AXISBANK.NS", Name: "Axis Bank Limited", Sector: "Banking", Exchange: "NSE", Region: "India", Domain: "axisbank.com"},
	{Symbol: "HCLTECH.NS", Name: "HCL Technologies Limited", Sector: "IT Services", Exchange: "NSE", Region: "India", Domain: "hcltech.com"},

	// US large caps.
	{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology", Exchange: "NASDAQ", Region: "US", Domain: "apple.com"},
	{Symbol: "MSFT", Name: "Microsoft Corporation", Sector: "Technology", Exchange: "NASDAQ", Region: "US", Domain: "microsoft.com"},
	{Symbol: "GOOGL", Name: "Alphabet Inc.", Sector: "Technology", Exchange: "NASDAQ", Region: "US", Domain: "google.com"},
	{Symbol: "AMZN", Name: "Amazon.com Inc.", Sector: "E-commerce", Exchange: "NASDAQ", Region: "US", Domain: "amazon.com"},
	{Symbol: "TSLA", Name: "Tesla Inc.", Sector: "Automotive", Exchange: "NASDAQ", Region: "US", Domain: "tesla.com"},
	{Symbol: "META", Name: "Meta Platforms Inc.", Sector: "Social Media", Exchange: "NASDAQ", Region: "US", Domain: "meta.com"},
	{Symbol: "NVDA", Name: "NVIDIA Corporation", Sector: "Semiconductors", Exchange: "NASDAQ", Region: "US", Domain: "nvidia.com"},
	{Symbol: "NFLX", Name: "Netflix Inc.", Sector: "Entertainment", Exchange: "NASDAQ", Region: "US", Domain: "netflix.com"},
	{Symbol: "ADBE", Name: "Adobe Inc.", Sector: "Software", Exchange: "NASDAQ", Region: "US", Domain: "adobe.com"},
	{Symbol: "CRM", Name: "Salesforce Inc.", Sector: "Software", Exchange: "NYSE", Region: "US", Domain: "salesforce.com"},
}
