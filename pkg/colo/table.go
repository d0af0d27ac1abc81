package colo

// builtin is the shipped Cloudflare data center mapping, keyed by IATA-style
// airport code. Sourced from the public data center list; a local
// airport_codes.json can overlay or extend it at startup.
var builtin = map[string]Info{
	"HKG": {Name: "香港", Region: "亚太", Country: "中国香港"},
	"TPE": {Name: "台北", Region: "亚太", Country: "中国台湾"},

	"NRT": {Name: "东京成田", Region: "亚太", Country: "日本"},
	"KIX": {Name: "大阪", Region: "亚太", Country: "日本"},
	"ITM": {Name: "大阪伊丹", Region: "亚太", Country: "日本"},
	"FUK": {Name: "福冈", Region: "亚太", Country: "日本"},

	"ICN": {Name: "首尔仁川", Region: "亚太", Country: "韩国"},

	"SIN": {Name: "新加坡", Region: "亚太", Country: "新加坡"},
	"BKK": {Name: "曼谷", Region: "亚太", Country: "泰国"},
	"HAN": {Name: "河内", Region: "亚太", Country: "越南"},
	"SGN": {Name: "胡志明市", Region: "亚太", Country: "越南"},
	"MNL": {Name: "马尼拉", Region: "亚太", Country: "菲律宾"},
	"CGK": {Name: "雅加达", Region: "亚太", Country: "印度尼西亚"},
	"KUL": {Name: "吉隆坡", Region: "亚太", Country: "马来西亚"},
	"RGN": {Name: "仰光", Region: "亚太", Country: "缅甸"},
	"PNH": {Name: "金边", Region: "亚太", Country: "柬埔寨"},

	"BOM": {Name: "孟买", Region: "亚太", Country: "印度"},
	"DEL": {Name: "新德里", Region: "亚太", Country: "印度"},
	"MAA": {Name: "金奈", Region: "亚太", Country: "印度"},
	"BLR": {Name: "班加罗尔", Region: "亚太", Country: "印度"},
	"HYD": {Name: "海得拉巴", Region: "亚太", Country: "印度"},
	"CCU": {Name: "加尔各答", Region: "亚太", Country: "印度"},

	"SYD": {Name: "悉尼", Region: "亚太", Country: "澳大利亚"},
	"MEL": {Name: "墨尔本", Region: "亚太", Country: "澳大利亚"},
	"BNE": {Name: "布里斯班", Region: "亚太", Country: "澳大利亚"},
	"PER": {Name: "珀斯", Region: "亚太", Country: "澳大利亚"},
	"AKL": {Name: "奥克兰", Region: "亚太", Country: "新西兰"},

	"LAX": {Name: "洛杉矶", Region: "北美", Country: "美国"},
	"SJC": {Name: "圣何塞", Region: "北美", Country: "美国"},
	"SEA": {Name: "西雅图", Region: "北美", Country: "美国"},
	"SFO": {Name: "旧金山", Region: "北美", Country: "美国"},
	"PDX": {Name: "波特兰", Region: "北美", Country: "美国"},
	"SAN": {Name: "圣地亚哥", Region: "北美", Country: "美国"},
	"PHX": {Name: "凤凰城", Region: "北美", Country: "美国"},
	"LAS": {Name: "拉斯维加斯", Region: "北美", Country: "美国"},

	"EWR": {Name: "纽瓦克", Region: "北美", Country: "美国"},
	"IAD": {Name: "华盛顿", Region: "北美", Country: "美国"},
	"BOS": {Name: "波士顿", Region: "北美", Country: "美国"},
	"PHL": {Name: "费城", Region: "北美", Country: "美国"},
	"ATL": {Name: "亚特兰大", Region: "北美", Country: "美国"},
	"MIA": {Name: "迈阿密", Region: "北美", Country: "美国"},
	"MCO": {Name: "奥兰多", Region: "北美", Country: "美国"},

	"ORD": {Name: "芝加哥", Region: "北美", Country: "美国"},
	"DFW": {Name: "达拉斯", Region: "北美", Country: "美国"},
	"IAH": {Name: "休斯顿", Region: "北美", Country: "美国"},
	"DEN": {Name: "丹佛", Region: "北美", Country: "美国"},
	"MSP": {Name: "明尼阿波利斯", Region: "北美", Country: "美国"},
	"DTW": {Name: "底特律", Region: "北美", Country: "美国"},
	"STL": {Name: "圣路易斯", Region: "北美", Country: "美国"},
	"MCI": {Name: "堪萨斯城", Region: "北美", Country: "美国"},

	"YYZ": {Name: "多伦多", Region: "北美", Country: "加拿大"},
	"YVR": {Name: "温哥华", Region: "北美", Country: "加拿大"},
	"YUL": {Name: "蒙特利尔", Region: "北美", Country: "加拿大"},

	"LHR": {Name: "伦敦", Region: "欧洲", Country: "英国"},
	"CDG": {Name: "巴黎", Region: "欧洲", Country: "法国"},
	"FRA": {Name: "法兰克福", Region: "欧洲", Country: "德国"},
	"AMS": {Name: "阿姆斯特丹", Region: "欧洲", Country: "荷兰"},
	"BRU": {Name: "布鲁塞尔", Region: "欧洲", Country: "比利时"},
	"ZRH": {Name: "苏黎世", Region: "欧洲", Country: "瑞士"},
	"VIE": {Name: "维也纳", Region: "欧洲", Country: "奥地利"},
	"MUC": {Name: "慕尼黑", Region: "欧洲", Country: "德国"},
	"DUS": {Name: "杜塞尔多夫", Region: "欧洲", Country: "德国"},
	"HAM": {Name: "汉堡", Region: "欧洲", Country: "德国"},

	"MAD": {Name: "马德里", Region: "欧洲", Country: "西班牙"},
	"BCN": {Name: "巴塞罗那", Region: "欧洲", Country: "西班牙"},
	"MXP": {Name: "米兰", Region: "欧洲", Country: "意大利"},
	"FCO": {Name: "罗马", Region: "欧洲", Country: "意大利"},
	"ATH": {Name: "雅典", Region: "欧洲", Country: "希腊"},
	"LIS": {Name: "里斯本", Region: "欧洲", Country: "葡萄牙"},

	"ARN": {Name: "斯德哥尔摩", Region: "欧洲", Country: "瑞典"},
	"CPH": {Name: "哥本哈根", Region: "欧洲", Country: "丹麦"},
	"OSL": {Name: "奥斯陆", Region: "欧洲", Country: "挪威"},
	"HEL": {Name: "赫尔辛基", Region: "欧洲", Country: "芬兰"},

	"WAW": {Name: "华沙", Region: "欧洲", Country: "波兰"},
	"PRG": {Name: "布拉格", Region: "欧洲", Country: "捷克"},
	"BUD": {Name: "布达佩斯", Region: "欧洲", Country: "匈牙利"},
	"OTP": {Name: "布加勒斯特", Region: "欧洲", Country: "罗马尼亚"},
	"SOF": {Name: "索非亚", Region: "欧洲", Country: "保加利亚"},

	"DXB": {Name: "迪拜", Region: "中东", Country: "阿联酋"},
	"TLV": {Name: "特拉维夫", Region: "中东", Country: "以色列"},
	"BAH": {Name: "巴林", Region: "中东", Country: "巴林"},
	"AMM": {Name: "安曼", Region: "中东", Country: "约旦"},
	"KWI": {Name: "科威特", Region: "中东", Country: "科威特"},
	"DOH": {Name: "多哈", Region: "中东", Country: "卡塔尔"},
	"MCT": {Name: "马斯喀特", Region: "中东", Country: "阿曼"},

	"GRU": {Name: "圣保罗", Region: "南美", Country: "巴西"},
	"GIG": {Name: "里约热内卢", Region: "南美", Country: "巴西"},
	"EZE": {Name: "布宜诺斯艾利斯", Region: "南美", Country: "阿根廷"},
	"BOG": {Name: "波哥大", Region: "南美", Country: "哥伦比亚"},
	"LIM": {Name: "利马", Region: "南美", Country: "秘鲁"},
	"SCL": {Name: "圣地亚哥", Region: "南美", Country: "智利"},

	"JNB": {Name: "约翰内斯堡", Region: "非洲", Country: "南非"},
	"CPT": {Name: "开普敦", Region: "非洲", Country: "南非"},
	"CAI": {Name: "开罗", Region: "非洲", Country: "埃及"},
	"LOS": {Name: "拉各斯", Region: "非洲", Country: "尼日利亚"},
	"NBO": {Name: "内罗毕", Region: "非洲", Country: "肯尼亚"},
	"ACC": {Name: "阿克拉", Region: "非洲", Country: "加纳"},
}
