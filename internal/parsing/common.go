package parsing

import "strings"

// commonWordList holds everyday English and résumé words of five or more letters.
// Several sit within one or two edits of a technology name (scale/Scala, reach/React,
// sprint/Spring, string/Spring, docket/Docker) and must never be read as a misspelling.
const commonWordList = `
about above access account accounts accurate achieve across action active activity actual
added adding additional address adopt advance advanced advice affect after again against agency
agent agile align allow almost alone along already although always amount analysis analyst
annual another answer anyone apply approach approve architecture areas around arrange article
asked assess asset assets assign assist associate attend audience audit author automate
available average award aware balance based basic basis batch became become before began begin
behind being believe below benefit better between beyond billing board bonus brand brief bring
broad brought budget build builder building built business buyer cable called campaign capital
career carry cases cause center central certain chain chair challenge champion change channel
chapter charge chart check chief choice chose claim class classes clean clear client clients
close cloud coach coding collect college combine comfort command comment commerce commit common
company compare compete complete complex comply concept conduct confirm connect consider consult
contact content context contract control convert coordinate copies corporate correct costs
could council count counter country county couple course court cover craft create credit
critical cross current custom customer customers cycle daily damage dashboard dealer deals
decide decision define degree deliver demand depart deploy design desk detail details develop
device direct director doctor docket document domain dozen draft drive driven early earned
easily economy editor effect effective effort eight either email emerge employ enable ended
energy engage engine english enhance enough ensure enter entire entry equal error estate event
events every exact example exceed execute exist expand expect expert explain export
extend external extra facility factor faculty failed fairly faster feature federal field
figure final finance financial finding finish first fixed flight floor focus follow force
forecast foreign formal format former forward found frame france freight front funding funds
further future gained games garden gather general giant given global goals grade grant graph
great green gross group groups growth guest guide handle happen health heavy helped hired
history holder homes hotel hours house human ideas image impact import improve include income
increase index industry inform initial input inside install instead intern internal invest
issue issues joined joint judge junior keeping labor large later launch layer leader learn
learning lease least leave legal level light limit linear lines links listed local logic
loyal lower machine major makes manage manager margin market markets master match matter media
medical meeting member members mentor merge method metric metrics middle might minor mobile
model models money month monthly months moved multiple music myself national native nature
needed network never newly night normal north noted number object offer office officer often
online opened order orders other outside owner owned packet paper parent parts party patient
payment people period person phase phone place plans plant platform player point policy
portal positive power practice prepare present press price primary print prior private process
produce product profit program project proper propose provide public purpose quality quarter
query quick quite raise range rapid rather reach reached reaches reaching ready reason
recent record reduce region relate release report request require research reset resolve
resource result retail return revenue review right rights rules sales sample saved saving scale
scaled scales scaling school science scope score screen search season second sector secure
select senior sense serve server service session setting seven share shift short should
signal simple single skill skills small smart social solid solve source space spare speak
special spend split sport sprint staff stage stand start state status steady stock store
story strategy stream street string strong student study style submit success suite summer
supply support survey system table target taught teams technical tenant terms tested testing
their there these thing think third those three through ticket title today together tools
topic total touch toward track trade train training travel trend trial trust under union
units update upper urban usage users using value vendor venue video visit voice volume wages
watch water weekly weight where which while white whole wider within without women words
worked worker workflow world would write written yearly years young
`

var commonStems = func() map[string]bool {
	words := strings.Fields(commonWordList)
	stems := make(map[string]bool, len(words)*2)
	for _, w := range words {
		stems[w] = true
		stems[Stem(w)] = true
	}
	return stems
}()

// IsCommonWord reports whether a lowercased word, or an inflection of it, is ordinary
// English rather than a technology name
func IsCommonWord(norm string) bool {
	return commonStems[norm] || commonStems[Stem(norm)]
}
