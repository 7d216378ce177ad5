package collect

import "github.com/rotisserie/eris"

// errNoCurrentGW: the API listed no event with is_current set, which
// happens between seasons.
var errNoCurrentGW = eris.New("collect: no current gameweek")
