package directory

// Default returns the built-in competitor directory. The tables are plain
// configuration data; deployments can replace them wholesale via the
// config file.
func Default() *Directory {
	return New(defaultEntries, defaultSources)
}

var defaultEntries = []Entry{
	// Tech giants
	{"google.com", "Google"},
	{"microsoft.com", "Microsoft"},
	{"apple.com", "Apple"},
	{"amazon.com", "Amazon"},
	{"meta.com", "Meta"},
	{"facebook.com", "Meta"},

	// Fintech
	{"stripe.com", "Stripe"},
	{"paypal.com", "PayPal"},
	{"square.com", "Square"},
	{"plaid.com", "Plaid"},
	{"brex.com", "Brex"},
	{"ramp.com", "Ramp"},
	{"mercury.com", "Mercury"},
	{"wise.com", "Wise"},
	{"airwallex.com", "Airwallex"},

	// Productivity
	{"notion.so", "Notion"},
	{"notion.com", "Notion"},
	{"slack.com", "Slack"},
	{"figma.com", "Figma"},
	{"linear.app", "Linear"},
	{"asana.com", "Asana"},
	{"monday.com", "Monday.com"},
	{"airtable.com", "Airtable"},

	// Dev tools
	{"github.com", "GitHub"},
	{"gitlab.com", "GitLab"},
	{"vercel.com", "Vercel"},
	{"netlify.com", "Netlify"},
	{"supabase.com", "Supabase"},

	// Crypto / stablecoin companies
	{"circle.com", "Circle"},
	{"bvnk.com", "BVNK"},
	{"zerohash.com", "ZeroHash"},
	{"fireblocks.com", "Fireblocks"},
	{"moonpay.com", "Moonpay"},
	{"bridge.xyz", "Bridge"},
	{"anchorage.com", "Anchorage"},
	{"crypto.com", "Crypto.com"},
	{"coinbase.com", "Coinbase"},
	{"exodus.com", "Exodus"},
	{"crossmint.com", "Crossmint"},
	{"hashkey.com", "Hashkey"},
	{"ripple.com", "Ripple"},

	// Payments
	{"revolut.com", "Revolut"},
	{"adyen.com", "Adyen"},
	{"visa.com", "Visa"},
	{"mastercard.com", "Mastercard"},
	{"klarna.com", "Klarna"},
	{"nubank.com.br", "Nubank"},
	{"marqeta.com", "Marqeta"},
	{"paysafe.com", "Paysafe"},
	{"payoneer.com", "Payoneer"},
	{"shift4.com", "Shift4"},
	{"moderntreasury.com", "Modern Treasury"},
	{"finix.com", "Finix"},
	{"block.xyz", "Square"},
	{"squareup.com", "Square"},
	{"thunes.com", "Thunes"},
	{"terrapay.com", "TerraPay"},

	// Regional players
	{"rain.xyz", "Rain"},
	{"raincards.xyz", "Rain"},
	{"conduit.financial", "Conduit"},
	{"straitsx.com", "StraitsX"},
	{"karsa.io", "Karsa"},
	{"tryjeeves.com", "Jeeves"},
	{"wirexapp.com", "Wirex"},
	{"palmpay.com", "PalmPay"},
	{"felixpago.com", "Felix Pago"},
	{"dolarapp.com", "DolarApp"},
	{"m-pesa.com", "M-Pesa"},
	{"safaricom.co.ke", "M-Pesa"},
	{"alipay.com", "AliPay"},
	{"tempo.eu.com", "Tempo"},
	{"idrx.co", "IDRX"},
	{"tria.so", "Tria"},
	{"socgen.com", "Societe Generale"},
	{"sc.com", "Standard Chartered"},
	{"walmart.com", "Walmart"},
}

// Source domains are where news is shared, never the subject of an update.
// A link from one of these shifts resolution to the message text.
var defaultSources = []string{
	// Social media
	"x.com", "twitter.com", "linkedin.com", "facebook.com", "instagram.com",
	"threads.net", "bsky.app", "mastodon.social",

	// News and media sites
	"techcrunch.com", "bloomberg.com", "reuters.com", "cnbc.com", "ft.com",
	"wsj.com", "forbes.com", "businessinsider.com", "theverge.com",
	"wired.com", "arstechnica.com", "venturebeat.com", "sifted.eu",
	"scmp.com", "cnn.com", "bbc.com", "nytimes.com",
	"news.bitcoin.com", "coindesk.com", "theblock.co", "decrypt.co",
	"technode.global", "techinasia.com", "e27.co", "dealstreetasia.com",
	"fintechmagazine.com", "finextra.com", "pymnts.com",
	"asianbankingandfinance.net", "ledgerinsights.com",

	// Video platforms
	"youtube.com", "youtu.be", "vimeo.com", "tiktok.com",

	// Other aggregators
	"medium.com", "substack.com", "reddit.com", "news.ycombinator.com",
}
