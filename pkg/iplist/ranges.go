package iplist

// ipv6Ranges are the announced Cloudflare IPv6 blocks plus the detailed
// subnets the measurement tool samples from. Kept in file order: top-level
// blocks first.
var ipv6Ranges = []string{
	"2400:cb00::/32",
	"2606:4700::/32",
	"2803:f800::/32",
	"2405:b500::/32",
	"2405:8100::/32",
	"2a06:98c0::/29",
	"2c0f:f248::/32",

	"2400:cb00:2049::/48",
	"2400:cb00:f00e::/48",
	"2606:4700:10::/48",
	"2606:4700:130::/48",
	"2606:4700:3000::/48",
	"2606:4700:3001::/48",
	"2606:4700:3002::/48",
	"2606:4700:3003::/48",
	"2606:4700:3004::/48",
	"2606:4700:3005::/48",
	"2606:4700:3006::/48",
	"2606:4700:3007::/48",
	"2606:4700:3008::/48",
	"2606:4700:3009::/48",
	"2606:4700:3010::/48",
	"2606:4700:3011::/48",
	"2606:4700:3012::/48",
	"2606:4700:3013::/48",
	"2606:4700:3014::/48",
	"2606:4700:3015::/48",
	"2606:4700:3016::/48",
	"2606:4700:3017::/48",
	"2606:4700:3018::/48",
	"2606:4700:3019::/48",
	"2606:4700:3020::/48",
	"2606:4700:3021::/48",
	"2606:4700:3022::/48",
	"2606:4700:3023::/48",
	"2606:4700:3024::/48",
	"2606:4700:3025::/48",
	"2606:4700:3026::/48",
	"2606:4700:3027::/48",
	"2606:4700:3028::/48",
	"2606:4700:3029::/48",
	"2606:4700:3030::/48",
	"2606:4700:3031::/48",
	"2606:4700:3032::/48",
	"2606:4700:3033::/48",
	"2606:4700:3034::/48",
	"2606:4700:3035::/48",
	"2606:4700:3036::/48",
	"2606:4700:3037::/48",
	"2606:4700:3038::/48",
	"2606:4700:3039::/48",
	"2606:4700:a0::/48",
	"2606:4700:a1::/48",
	"2606:4700:a8::/48",
	"2606:4700:a9::/48",
	"2606:4700:a::/48",
	"2606:4700:b::/48",
	"2606:4700:c::/48",
	"2606:4700:d0::/48",
	"2606:4700:d1::/48",
	"2606:4700:d::/48",
	"2606:4700:e0::/48",
	"2606:4700:e1::/48",
	"2606:4700:e2::/48",
	"2606:4700:e3::/48",
	"2606:4700:e4::/48",
	"2606:4700:e5::/48",
	"2606:4700:e6::/48",
	"2606:4700:e7::/48",
	"2606:4700:e::/48",
	"2606:4700:f1::/48",
	"2606:4700:f2::/48",
	"2606:4700:f3::/48",
	"2606:4700:f4::/48",
	"2606:4700:f5::/48",
	"2606:4700:f::/48",
	"2803:f800:50::/48",
	"2803:f800:51::/48",
	"2a06:98c1:3100::/48",
	"2a06:98c1:3101::/48",
	"2a06:98c1:3102::/48",
	"2a06:98c1:3103::/48",
	"2a06:98c1:3104::/48",
	"2a06:98c1:3105::/48",
	"2a06:98c1:3106::/48",
	"2a06:98c1:3107::/48",
	"2a06:98c1:3108::/48",
	"2a06:98c1:3109::/48",
	"2a06:98c1:310a::/48",
	"2a06:98c1:310b::/48",
	"2a06:98c1:310c::/48",
	"2a06:98c1:310d::/48",
	"2a06:98c1:310e::/48",
	"2a06:98c1:310f::/48",
	"2a06:98c1:3120::/48",
	"2a06:98c1:3121::/48",
	"2a06:98c1:3122::/48",
	"2a06:98c1:3123::/48",
	"2a06:98c1:3200::/48",
	"2a06:98c1:50::/48",
	"2a06:98c1:51::/48",
	"2a06:98c1:54::/48",
	"2a06:98c1:58::/48",
}
