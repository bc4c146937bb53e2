package grid

// DefaultLayout is the factory floor used when the configuration does not
// supply its own map.
var DefaultLayout = []string{
	"###############",
	"#             #",
	"#         OOO #",
	"# OOO  D  O D #",
	"#   O  O  OOOO#",
	"#R2 O         #",
	"#OOOO  R4 OOO #",
	"#      D  O   #",
	"#     OOO O D #",
	"#         OOOO#",
	"#       R1    #",
	"#   R3 D      #",
	"#     OOO     #",
	"#S     O    D #",
	"###############",
}
